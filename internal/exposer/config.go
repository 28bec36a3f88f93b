package exposer

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Tunables carried over from the reference datasets. None of them is derived;
// they are kept as named values so they can be recalibrated.
const (
	// ResidualFactorBase is the constant in factor = base - residualDistance
	// that scales every influence a sample drops on the grid.
	ResidualFactorBase = 5.0

	// PresenceThreshold is the cell value above which the dominant class counts
	// as present when deriving the theta vector.
	PresenceThreshold = 0.7

	// LegacyPresenceThreshold is the presence threshold of the older measure
	// calculator.
	LegacyPresenceThreshold = 0.1

	// SaturationThreshold is the cell value above which a cell's saturation
	// feeds the per-class saturation theta.
	SaturationThreshold = 0.5

	// MissingFeature replaces NaN features of query samples.
	MissingFeature = 0.5

	// DefaultScale is the default guide weight of the renderer.
	DefaultScale = 240
)

// VotingMode selects how a structure's raw support is weighted before it is
// added to a query's accumulator.
type VotingMode int

// Lone is 1 so that persisted mode numbers stay stable; the zero value also means Lone.
const (
	Lone VotingMode = iota + 1
	Theta1
	Theta2
	Theta3
	ThetaS
)

var votingModeNames = map[VotingMode]string{
	Lone:   "lone",
	Theta1: "theta1",
	Theta2: "theta2",
	Theta3: "theta3",
	ThetaS: "thetas",
}

// VotingModes lists every mode in declaration order.
func VotingModes() []VotingMode {
	return []VotingMode{Lone, Theta1, Theta2, Theta3, ThetaS}
}

func (m VotingMode) String() string {
	if m == 0 {
		return votingModeNames[Lone]
	}
	if name, ok := votingModeNames[m]; ok {
		return name
	}
	return "VotingMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseVotingMode resolves a mode by its lowercase name.
func ParseVotingMode(s string) (VotingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Lone, nil
	}
	for m, name := range votingModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownVotingMode, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m VotingMode) MarshalText() ([]byte, error) {
	if _, ok := votingModeNames[m]; !ok && m != 0 {
		return nil, errors.Wrapf(ErrUnknownVotingMode, "%d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *VotingMode) UnmarshalText(text []byte) error {
	parsed, err := ParseVotingMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config describes one Exposer structure.
type Config struct {
	// Grain is the number of quantization steps per dimension.
	Grain int `json:"grain" mapstructure:"grain"`
	// Radius is the influence reach as a fraction of the grid span.
	Radius float64 `json:"radius" mapstructure:"radius"`
	// ChosenLambda lists the feature indices spanning the grid, in axis order.
	ChosenLambda []int `json:"chosen_lambda" mapstructure:"chosenLambda"`
	// VotingMode defaults to Lone.
	VotingMode VotingMode `json:"voting_mode" mapstructure:"exposerVotingMethod"`
	// Workers > 1 partitions the training samples across goroutines.
	Workers int `json:"workers,omitempty" mapstructure:"workers"`
}

// Dimensions is the number of grid axes.
func (c Config) Dimensions() int {
	return len(c.ChosenLambda)
}

// QuantizedRadius is floor(radius*grain).
func (c Config) QuantizedRadius() int {
	return int(math.Floor(c.Radius * float64(c.Grain)))
}

// Cells returns grain^dimensions, or false when it does not fit an int32.
func (c Config) Cells() (int, bool) {
	if c.Grain < 1 {
		return 0, false
	}
	n := 1
	for i := 0; i < c.Dimensions(); i++ {
		n *= c.Grain
		if n > math.MaxInt32 {
			return 0, false
		}
	}
	return n, true
}

// Validate checks the configuration against the dataset shape. numFeatures <= 0
// skips the lambda range check. All violations are reported together.
func (c Config) Validate(numClasses, numFeatures int) error {
	var err error
	if c.Grain < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrBadGrain, "got %d", c.Grain))
	}
	if !(c.Radius > 0 && c.Radius <= 1) {
		err = multierr.Append(err, errors.Wrapf(ErrBadRadius, "got %v", c.Radius))
	} else if c.Grain >= 1 && c.QuantizedRadius() < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrZeroRadius, "radius %v, grain %d", c.Radius, c.Grain))
	}
	if len(c.ChosenLambda) == 0 {
		err = multierr.Append(err, ErrEmptyLambda)
	}
	seen := make(map[int]bool, len(c.ChosenLambda))
	for _, idx := range c.ChosenLambda {
		if idx < 0 || (numFeatures > 0 && idx >= numFeatures) {
			err = multierr.Append(err, errors.Wrapf(ErrLambdaRange, "index %d, features %d", idx, numFeatures))
		}
		if seen[idx] {
			err = multierr.Append(err, errors.Wrapf(ErrDuplicateLambda, "index %d", idx))
		}
		seen[idx] = true
	}
	if numClasses < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrBadClasses, "got %d", numClasses))
	}
	if _, ok := votingModeNames[c.VotingMode]; !ok && c.VotingMode != 0 {
		err = multierr.Append(err, errors.Wrapf(ErrUnknownVotingMode, "%d", int(c.VotingMode)))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrBadWorkers, "got %d", c.Workers))
	}
	if c.Grain >= 1 && len(c.ChosenLambda) > 0 {
		if _, ok := c.Cells(); !ok {
			err = multierr.Append(err, errors.Wrapf(ErrGridTooLarge, "grain %d, dimensions %d", c.Grain, c.Dimensions()))
		}
	}
	return err
}

func (c Config) withDefaults() Config {
	if c.VotingMode == 0 {
		c.VotingMode = Lone
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	c.ChosenLambda = append([]int(nil), c.ChosenLambda...)
	return c
}

// ConfigFromMap decodes a dictionary-style configuration, as produced by JSON
// or YAML decoding into map[string]interface{}. Keys: grain, radius,
// chosenLambda (list or "2,3"), exposerVotingMethod (name or number), workers.
func ConfigFromMap(m map[string]interface{}) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			votingModeHook,
			lambdaHook,
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "creating config decoder")
	}
	if err := dec.Decode(m); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

var (
	votingModeType = reflect.TypeOf(VotingMode(0))
	lambdaType     = reflect.TypeOf([]int(nil))
)

var votingModeHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != votingModeType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseVotingMode(reflect.ValueOf(data).String())
}

// lambdaHook accepts "2,3" for a list of feature indices.
var lambdaHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != lambdaType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseLambda(reflect.ValueOf(data).String())
}

// ParseLambda parses a comma separated list of feature indices.
func ParseLambda(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing lambda %q", s)
		}
		out = append(out, idx)
	}
	return out, nil
}
