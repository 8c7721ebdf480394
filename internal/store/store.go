// Package store persists fetched result pages and the recent-query history
// in BoltDB, fronted by an LRU memory layer promoted on access.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mmcdole/biblio/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketResults = []byte("results")
	bucketHistory = []byte("history")
)

const (
	historyKey        = "recent"
	defaultMemEntries = 128
)

// resultEnvelope stamps a cached result page for TTL checks.
type resultEnvelope struct {
	SavedAt int64               `json:"saved_at"` // Unix nanoseconds
	Result  domain.SearchResult `json:"result"`
}

// SearchStore implements domain.Store using BoltDB.
type SearchStore struct {
	db  *bolt.DB
	ttl time.Duration

	// LRU memory layer for hot-path reads (promoted on access)
	mem *lru.Cache[string, []byte]
}

// NewSearchStore opens (or creates) the store under dir. An empty dir gives
// a memory-only store with no persistence. ttl <= 0 disables result expiry.
func NewSearchStore(dir string, ttl time.Duration, memEntries int) (*SearchStore, error) {
	if memEntries < 1 {
		memEntries = defaultMemEntries
	}
	mem, err := lru.New[string, []byte](memEntries)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		return &SearchStore{ttl: ttl, mem: mem}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "biblio.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketResults, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SearchStore{db: db, ttl: ttl, mem: mem}, nil
}

func (s *SearchStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SearchStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	if data, ok := s.mem.Get(cacheKey); ok {
		return json.Unmarshal(data, dest) == nil
	}

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to the memory layer
	s.mem.Add(cacheKey, data)

	return json.Unmarshal(data, dest) == nil
}

func (s *SearchStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mem.Add(string(bucket)+":"+key, data)

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *SearchStore) delete(bucket []byte, key string) {
	s.mem.Remove(string(bucket) + ":" + key)

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Result pages ===

// GetResult returns a cached result page. Entries older than the TTL read
// as a miss and are evicted.
func (s *SearchStore) GetResult(key string) (*domain.SearchResult, bool) {
	var env resultEnvelope
	if !s.get(bucketResults, key, &env) {
		return nil, false
	}
	if s.ttl > 0 && time.Since(time.Unix(0, env.SavedAt)) > s.ttl {
		s.delete(bucketResults, key)
		return nil, false
	}
	return &env.Result, true
}

func (s *SearchStore) SaveResult(key string, result *domain.SearchResult) error {
	return s.set(bucketResults, key, resultEnvelope{
		SavedAt: time.Now().UnixNano(),
		Result:  *result,
	})
}

// InvalidateResults drops every cached result page. Other buckets' memory
// entries stay; in memory-only mode they are the only copy.
func (s *SearchStore) InvalidateResults() {
	prefix := string(bucketResults) + ":"
	for _, key := range s.mem.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.mem.Remove(key)
		}
	}

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Query history ===

func (s *SearchStore) RecentQueries() ([]string, bool) {
	var queries []string
	ok := s.get(bucketHistory, historyKey, &queries)
	return queries, ok
}

func (s *SearchStore) SaveRecentQueries(queries []string) error {
	return s.set(bucketHistory, historyKey, queries)
}
