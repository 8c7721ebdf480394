package openlibrary

// searchResponse is the root of an Open Library search response
type searchResponse struct {
	NumFound      int         `json:"num_found"`
	Start         int         `json:"start"`
	NumFoundExact bool        `json:"numFoundExact,omitempty"`
	Docs          []searchDoc `json:"docs"`
}

// searchDoc is one work in the docs array
type searchDoc struct {
	Key              string   `json:"key,omitempty"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name,omitempty"`
	CoverEditionKey  string   `json:"cover_edition_key,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	EditionCount     int      `json:"edition_count,omitempty"`
}
