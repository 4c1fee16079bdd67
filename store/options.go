package store

import (
	"fmt"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/format"
	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/table"
)

const (
	// DefaultTrainingCount is the number of training curves in the train table.
	DefaultTrainingCount = 4
	// DefaultCatalogSize is the number of reference curves in the ideal table.
	DefaultCatalogSize = 50
)

// Config holds the schema sizes and the encoding used for table files.
type Config struct {
	TrainingCount int
	CatalogSize   int
	Compression   format.CompressionType
	BigEndian     bool
}

func defaultConfig() *Config {
	return &Config{
		TrainingCount: DefaultTrainingCount,
		CatalogSize:   DefaultCatalogSize,
		Compression:   format.CompressionZstd,
	}
}

func (c *Config) encoderOptions() []table.EncoderOption {
	opts := []table.EncoderOption{table.WithCompression(c.Compression)}
	if c.BigEndian {
		opts = append(opts, table.WithBigEndian())
	}

	return opts
}

// Option configures a store.
type Option = options.Option[*Config]

// WithTrainingCount sets the number of y-columns in the train table.
func WithTrainingCount(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: training count %d", errs.ErrSchemaMismatch, n)
		}
		c.TrainingCount = n

		return nil
	})
}

// WithCatalogSize sets the number of y-columns in the ideal table.
func WithCatalogSize(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: catalog size %d", errs.ErrSchemaMismatch, n)
		}
		c.CatalogSize = n

		return nil
	})
}

// WithCompression sets the codec for table files. The default is Zstd.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: invalid compression %v", errs.ErrStorage, comp)
		}
		c.Compression = comp

		return nil
	})
}

// WithBigEndian writes table files in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.BigEndian = true
	})
}
