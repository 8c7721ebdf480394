package openlibrary

import "github.com/mmcdole/biblio/internal/domain"

// MapSearchResult converts an Open Library search response to a domain
// result page
func MapSearchResult(resp *searchResponse) *domain.SearchResult {
	items := make([]domain.BookSummary, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		items = append(items, mapDoc(doc))
	}
	return &domain.SearchResult{
		TotalFound: resp.NumFound,
		Items:      items,
	}
}

// mapDoc converts a single doc to a domain book summary
func mapDoc(doc searchDoc) domain.BookSummary {
	return domain.BookSummary{
		Title:           doc.Title,
		AuthorNames:     doc.AuthorName,
		CoverEditionKey: doc.CoverEditionKey,
		WorkKey:         doc.Key,
		FirstPublished:  doc.FirstPublishYear,
	}
}
