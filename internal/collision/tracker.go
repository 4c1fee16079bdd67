package collision

import (
	"github.com/arloliu/curvefit/errs"
)

// Tracker records the column names of a table together with their hashed IDs.
// It rejects empty and duplicate names and notices when two different names
// share an ID, in which case lookups must fall back to comparing names.
type Tracker struct {
	ids          map[uint64]string
	names        []string
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[uint64]string),
		names: make([]string, 0, 8),
	}
}

// TrackColumn registers a column name with its ID.
//
// Returns errs.ErrInvalidColumnName for an empty name and errs.ErrDuplicateColumn
// when the same name was tracked before. A different name with the same ID is
// not an error; it only sets the collision flag.
func (t *Tracker) TrackColumn(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidColumnName
	}

	if existing, ok := t.ids[id]; ok {
		if existing == name {
			return errs.ErrDuplicateColumn
		}
		t.hasCollision = true
	}

	t.ids[id] = name
	t.names = append(t.names, name)

	return nil
}

// HasCollision reports whether two tracked names hashed to the same ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked columns.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.ids)
	t.names = t.names[:0]
	t.hasCollision = false
}
