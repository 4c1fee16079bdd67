package store

import (
	"fmt"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/table"
)

// MemStore keeps the tables in memory. Tables are copied on the way in and out.
type MemStore struct {
	*tables
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) (*MemStore, error) {
	t, err := newTables(memBackend{}, opts...)
	if err != nil {
		return nil, err
	}

	return &MemStore{tables: t}, nil
}

type memBackend map[string]*table.Table

func (m memBackend) readTable(name string) (*table.Table, error) {
	t, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrTableNotFound, name)
	}

	return t.Clone(), nil
}

func (m memBackend) writeTable(name string, t *table.Table) error {
	m[name] = t.Clone()

	return nil
}
