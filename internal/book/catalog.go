package book

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

// Catalog is the in-memory Repository. A single RWMutex guards both the
// books and the id counter.
type Catalog struct {
	mu     sync.RWMutex
	books  []Book
	nextID ID
}

// NewCatalog returns an empty catalog whose first id is 1.
func NewCatalog() *Catalog {
	return &Catalog{nextID: 1}
}

// Create trims title and author, rejects blanks, and appends a new book.
func (c *Catalog) Create(_ context.Context, title, author string) (Book, error) {
	in := createInput{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	}
	if err := check(in); err != nil {
		return Book{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b := Book{ID: c.nextID, Title: in.Title, Author: in.Author}
	c.books = append(c.books, b)
	c.nextID++
	return b, nil
}

// Get returns the book with the given id. Unknown or malformed ids report false.
func (c *Catalog) Get(_ context.Context, id string) (Book, bool, error) {
	bid, ok := ParseID(id)
	if !ok {
		return Book{}, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.books {
		if b.ID == bid {
			return b, true, nil
		}
	}
	return Book{}, false, nil
}

// List returns a new slice of the books matching q.
func (c *Catalog) List(_ context.Context, q ListQuery) ([]Book, error) {
	if q.SortBy != "" && !q.SortBy.Valid() {
		return nil, check(listInput{SortBy: string(q.SortBy)})
	}

	term := strings.ToLower(q.Search)

	c.mu.RLock()
	out := make([]Book, 0, len(c.books))
	for _, b := range c.books {
		if term == "" || matches(b, term) {
			out = append(out, b)
		}
	}
	c.mu.RUnlock()

	if q.SortBy != "" {
		sortBooks(out, q.SortBy, q.Desc)
	}
	return out, nil
}

// Delete removes the book with the given id and reports whether it existed.
func (c *Catalog) Delete(_ context.Context, id string) (bool, error) {
	bid, ok := ParseID(id)
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.books, func(b Book) bool { return b.ID == bid })
	if i < 0 {
		return false, nil
	}
	c.books = slices.Delete(c.books, i, i+1)
	return true, nil
}

// Len returns the number of books currently held.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

func matches(b Book, term string) bool {
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

// sortBooks orders books stably by field. Descending order inverts the
// comparison rather than reversing the result, so equal keys keep their
// original relative order in both directions.
func sortBooks(books []Book, field SortField, desc bool) {
	compare := func(a, b Book) int {
		switch field {
		case SortByID:
			return cmp.Compare(a.ID, b.ID)
		case SortByTitle:
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		default:
			return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		}
	}
	if desc {
		slices.SortStableFunc(books, func(a, b Book) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(books, compare)
}
