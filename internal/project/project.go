// Package project provides experiment file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"exposer/internal/exposer"
)

// CurrentVersion is the experiment file format written by Save.
const CurrentVersion = 1

// File represents an experiment file (.expjson): which data to use and which
// structures to train on it.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Dataset paths (relative to the experiment file)
	TrainPath string `json:"train"`
	TestPath  string `json:"test,omitempty"`

	// Used when no test file is given.
	SplitFraction float64 `json:"split,omitempty"`
	Seed          int64   `json:"seed,omitempty"`

	Structures []exposer.Config `json:"structures"`

	Settings Settings `json:"settings"`
}

// Settings holds data layout and rendering preferences.
type Settings struct {
	LabelFirst  bool   `json:"label_first"`
	LabelsFrom1 bool   `json:"labels_from_one,omitempty"`
	Header      bool   `json:"header"`
	Separator   string `json:"separator,omitempty"`
	Raw         bool   `json:"raw,omitempty"`
	RenderScale int    `json:"render_scale,omitempty"`
}

// New creates a new experiment with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:       CurrentVersion,
		Name:          name,
		Created:       now,
		Modified:      now,
		SplitFraction: 0.3,
		Settings: Settings{
			Separator:   ",",
			RenderScale: exposer.DefaultScale,
		},
	}
}

// Load loads an experiment from a file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var exp File
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if exp.Version != CurrentVersion {
		return nil, errors.Errorf("%s: unsupported experiment version %d", path, exp.Version)
	}
	if exp.Settings.RenderScale == 0 {
		exp.Settings.RenderScale = exposer.DefaultScale
	}
	return &exp, nil
}

// Save saves the experiment to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every structure against the dataset shape and reports all
// problems at once.
func (p *File) Validate(numClasses, numFeatures int) error {
	if len(p.Structures) == 0 {
		return errors.New("experiment has no structures")
	}
	var err error
	for i, s := range p.Structures {
		if verr := s.Validate(numClasses, numFeatures); verr != nil {
			err = multierr.Append(err, errors.Wrapf(verr, "structure %d", i))
		}
	}
	return err
}

// SetTrain sets the training data path (relative to the experiment).
func (p *File) SetTrain(projectPath, dataPath string) {
	p.TrainPath = relativeTo(projectPath, dataPath)
	p.Modified = time.Now()
}

// SetTest sets the test data path (relative to the experiment).
func (p *File) SetTest(projectPath, dataPath string) {
	p.TestPath = relativeTo(projectPath, dataPath)
	p.Modified = time.Now()
}

// GetTrainPath returns the absolute path to the training data.
func (p *File) GetTrainPath(projectPath string) string {
	return resolve(projectPath, p.TrainPath)
}

// GetTestPath returns the absolute path to the test data, or "" if the
// experiment splits its training data instead.
func (p *File) GetTestPath(projectPath string) string {
	return resolve(projectPath, p.TestPath)
}

// GetModelPath returns where the model trained for structure i is stored:
// next to the experiment, as name_structN.json.
func (p *File) GetModelPath(projectPath string, i int) string {
	base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
	return base + "_struct" + strconv.Itoa(i) + ".json"
}

// SeparatorRune returns the configured field separator, defaulting to a comma.
func (s Settings) SeparatorRune() rune {
	for _, r := range s.Separator {
		return r
	}
	return ','
}

func relativeTo(projectPath, target string) string {
	rel, err := filepath.Rel(filepath.Dir(projectPath), target)
	if err != nil {
		return target
	}
	return rel
}

func resolve(projectPath, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(projectPath), p)
}
