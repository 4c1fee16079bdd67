package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/table"
)

// FileExt is the extension of table files.
const FileExt = ".cft"

// FileStore keeps one table file per table in a directory.
//
// Writes go to a temporary file in the same directory that is renamed over
// the target, so readers see either the old or the new table.
type FileStore struct {
	*tables
	dir string
}

var _ Store = (*FileStore)(nil)

// Open opens the store in dir, creating the directory if needed.
//
// Parameters:
//   - dir: Directory holding the table files
//   - opts: Schema sizes and table file encoding
//
// Returns:
//   - *FileStore: Open store; call Close when done
//   - error: Invalid options or the directory cannot be created
func Open(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrStorage, dir, err)
	}

	fsb := &fileBackend{dir: dir}
	t, err := newTables(fsb, opts...)
	if err != nil {
		return nil, err
	}
	fsb.cfg = t.cfg

	return &FileStore{tables: t, dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path of the named table.
func (s *FileStore) Path(name string) string {
	return tablePath(s.dir, name)
}

func tablePath(dir, name string) string {
	return filepath.Join(dir, name+FileExt)
}

type fileBackend struct {
	dir string
	cfg *Config
}

func (b *fileBackend) readTable(name string) (*table.Table, error) {
	data, err := os.ReadFile(tablePath(b.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", errs.ErrTableNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	t, err := table.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return t, nil
}

func (b *fileBackend) writeTable(name string, t *table.Table) error {
	data, err := table.Encode(t, time.Now(), b.cfg.encoderOptions()...)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	f, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint: errcheck

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, tablePath(b.dir, name))
}
