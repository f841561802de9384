package billing

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It backs tests
// and lets the binaries run against no external storage.
type MemoryRepository struct {
	mu    sync.Mutex
	docs  map[string]*Document
	order []string
}

// NewMemoryRepository returns an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]*Document)}
}

func (m *MemoryRepository) Insert(ctx context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[doc.ID]; exists {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	stored := doc
	m.docs[doc.ID] = &stored
	m.order = append(m.order, doc.ID)
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *MemoryRepository) MarkInvoice(ctx context.Context, id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if doc.IsInvoice {
		return nil, fmt.Errorf("document %s: %w", id, ErrAlreadyConverted)
	}
	doc.IsInvoice = true
	copied := *doc
	return &copied, nil
}

func (m *MemoryRepository) List(ctx context.Context, isInvoice *bool) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []Document
	for _, id := range m.order {
		doc := m.docs[id]
		if isInvoice != nil && doc.IsInvoice != *isInvoice {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}
