package exposer

import "github.com/pkg/errors"

// Configuration errors are returned by New and Config.Validate. Validate may
// return several of them combined; use errors.Is to test for each.
var (
	ErrBadGrain          = errors.New("grain must be at least 1")
	ErrBadRadius         = errors.New("radius must be in (0,1]")
	ErrZeroRadius        = errors.New("radius*grain must reach at least one quantum")
	ErrEmptyLambda       = errors.New("chosen lambda is empty")
	ErrLambdaRange       = errors.New("chosen lambda index out of range")
	ErrDuplicateLambda   = errors.New("chosen lambda index repeated")
	ErrBadClasses        = errors.New("number of classes must be positive")
	ErrUnknownVotingMode = errors.New("unknown voting mode")
	ErrGridTooLarge      = errors.New("grid cell count overflows")
	ErrBadWorkers        = errors.New("workers must not be negative")
)

// Runtime errors.
var (
	ErrNotTrained         = errors.New("exposer has not learned yet")
	ErrBadLabel           = errors.New("sample label out of range")
	ErrShortFeatures      = errors.New("sample has fewer features than chosen lambda needs")
	ErrSupportLength      = errors.New("support accumulator length differs from class count")
	ErrBadScale           = errors.New("scale must be in [0,255]")
	ErrRenderDimensions   = errors.New("rendering needs at least two dimensions")
	ErrIncompatibleGrids  = errors.New("grids have different shapes")
	ErrUnsupportedVersion = errors.New("unsupported model file version")
)
