package table

import (
	"fmt"
	"time"

	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/format"
	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/section"
)

// EncoderConfig holds the header template and byte order used by an Encoder.
type EncoderConfig struct {
	header *section.TableHeader
	engine endian.EndianEngine
}

func newEncoderConfig(createdAt time.Time) *EncoderConfig {
	header := section.NewTableHeader(createdAt)

	return &EncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid column compression: %v", comp)
	}
}

func (c *EncoderConfig) setBigEndian(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}
	c.engine = c.header.Flag.GetEndianEngine()
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian selects little-endian byte order. It is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setBigEndian(false)
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setBigEndian(true)
	})
}

// WithCompression sets the codec applied to every column payload.
// The default is format.CompressionNone.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}
