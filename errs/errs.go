// Package errs defines the sentinel errors shared by all curvefit packages.
//
// Errors fall into three categories that callers can test with errors.Is:
//
//   - ErrPrecondition: the inputs of a selection cannot be compared at all
//     (different x-grids, empty catalog). Fatal for a run.
//   - ErrDomain: a single (observation, reference curve) pair cannot be
//     evaluated. Local to that pair.
//   - ErrStorage: the tabular store failed to load or persist data.
//
// Specific errors wrap their category, so both
// errors.Is(err, ErrGridMismatch) and errors.Is(err, ErrPrecondition) hold.
package errs

import (
	"errors"
	"fmt"
)

// Categories.
var (
	ErrPrecondition = errors.New("precondition failed")
	ErrDomain       = errors.New("domain error")
	ErrStorage      = errors.New("storage error")
)

// Selection and classification errors.
var (
	ErrGridMismatch       = fmt.Errorf("%w: x-grids differ", ErrPrecondition)
	ErrEmptyCatalog       = fmt.Errorf("%w: empty reference catalog", ErrPrecondition)
	ErrEmptyCurve         = fmt.Errorf("%w: curve has no samples", ErrPrecondition)
	ErrCurveLength        = fmt.Errorf("%w: x and y lengths differ", ErrPrecondition)
	ErrNonFiniteValue     = fmt.Errorf("%w: curve value is NaN or infinite", ErrPrecondition)
	ErrCatalogTooSmall    = fmt.Errorf("%w: catalog smaller than configured size", ErrPrecondition)
	ErrDuplicateTraining  = fmt.Errorf("%w: duplicate training curve id", ErrPrecondition)
	ErrInvalidTolerance   = fmt.Errorf("%w: tolerance must be a finite non-negative number", ErrPrecondition)
	ErrDuplicateReference = fmt.Errorf("%w: duplicate reference curve id", ErrPrecondition)
	ErrUnknownReference   = fmt.Errorf("%w: reference curve not in catalog", ErrPrecondition)
	ErrInvalidMetric      = fmt.Errorf("%w: invalid deviation metric", ErrPrecondition)
	ErrXNotInGrid         = fmt.Errorf("%w: x not in grid", ErrDomain)
)

// Store errors.
var (
	ErrStoreClosed    = fmt.Errorf("%w: store is closed", ErrStorage)
	ErrTxDone         = fmt.Errorf("%w: transaction already committed or rolled back", ErrStorage)
	ErrTableNotFound  = fmt.Errorf("%w: table not found", ErrStorage)
	ErrSchemaMismatch = fmt.Errorf("%w: table schema mismatch", ErrStorage)
)

// Table format errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidIndexOffsets  = errors.New("invalid index offsets")
	ErrInvalidIndexSize     = errors.New("invalid index entry size")
	ErrInvalidColumnNames   = errors.New("invalid column names payload")
	ErrInvalidColumnName    = errors.New("invalid column name")
	ErrInvalidColumnCount   = errors.New("invalid column count")
	ErrDuplicateColumn      = errors.New("duplicate column name")
	ErrColumnNotFound       = errors.New("column not found")
	ErrColumnLengthMismatch = errors.New("column length mismatch")
	ErrInvalidPayload       = errors.New("invalid column payload")
	ErrHashMismatch         = errors.New("column name hash mismatch")
	ErrTooManyRows          = errors.New("too many rows")
)
