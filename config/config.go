// Package config loads voting workflow documents: which datasets to
// align, the criterion for each, and the shared lattice parameters.
// Documents are JSON or YAML, discovered by walking a directory tree.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/nci/geomodel/geodesy"
	"github.com/nci/geomodel/grid"
	"github.com/nci/geomodel/vote"
)

// Anchor is the projection reference point of one workflow.
type Anchor struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Dataset names one input dataset, the scalar field to test and the
// criterion expression applied to it.
type Dataset struct {
	Name       string      `json:"name" yaml:"name"`
	Field      string      `json:"field" yaml:"field"`
	Criterion  string      `json:"criterion" yaml:"criterion"`
	Attributes interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Workflow is one voting run configuration.
type Workflow struct {
	Name        string    `json:"name" yaml:"name"`
	NameSpace   string    `json:"-" yaml:"-"`
	Extent      string    `json:"extent" yaml:"extent"`
	Box         []float64 `json:"box,omitempty" yaml:"box,omitempty"`
	Resolution  []int     `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	SigmaFactor float64   `json:"sigma_factor,omitempty" yaml:"sigma_factor,omitempty"`
	MeanCenter  bool      `json:"mean_center,omitempty" yaml:"mean_center,omitempty"`
	Relative    bool      `json:"relative,omitempty" yaml:"relative,omitempty"`
	Anchor      *Anchor   `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Datasets    []Dataset `json:"datasets" yaml:"datasets"`
}

// LoadConfigFile unmarshals one workflow document, JSON or YAML by file
// extension, and validates it.
func (w *Workflow) LoadConfigFile(configFile string) error {
	*w = Workflow{}
	cfg, err := ioutil.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("Error while reading config file: %s. Error: %v", configFile, err)
	}

	ext := strings.ToLower(filepath.Ext(configFile))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(cfg, w)
	} else {
		err = json.Unmarshal(cfg, w)
	}
	if err != nil {
		return fmt.Errorf("Error at parsing config document: %s. Error: %v", configFile, err)
	}
	return w.Validate()
}

// Validate checks the document against the voting engine's contract.
func (w *Workflow) Validate() error {
	if _, err := w.extentMode(); err != nil {
		return err
	}
	if len(w.Resolution) > 3 {
		return fmt.Errorf("resolution takes at most 3 entries, got %v", len(w.Resolution))
	}
	if len(w.Datasets) == 0 {
		return fmt.Errorf("workflow %q has no datasets", w.Name)
	}
	for i, ds := range w.Datasets {
		crit, err := vote.ParseCriterion(ds.Criterion)
		if err != nil {
			return fmt.Errorf("dataset %v: %v", i, err)
		}
		if ds.Field != "" && ds.Field != crit.Field {
			return fmt.Errorf("dataset %v: criterion %q tests field %q, config names %q", i, ds.Criterion, crit.Field, ds.Field)
		}
		if _, err := grid.NormalizeAttrs(ds.Attributes); err != nil {
			return fmt.Errorf("dataset %v: %v", i, err)
		}
	}
	return nil
}

func (w *Workflow) extentMode() (vote.ExtentMode, error) {
	switch w.Extent {
	case "", "overlapping":
		return vote.Overlapping, nil
	case "maximum":
		return vote.Maximum, nil
	case "explicit":
		if len(w.Box) != 6 {
			return 0, fmt.Errorf("explicit extent requires 6 box values, got %v", len(w.Box))
		}
		return vote.Explicit, nil
	default:
		return 0, fmt.Errorf("unknown extent mode %q", w.Extent)
	}
}

// VoteOptions maps the document onto the voting engine options.
func (w *Workflow) VoteOptions() (vote.Options, error) {
	mode, err := w.extentMode()
	if err != nil {
		return vote.Options{}, err
	}
	o := vote.Options{Mode: mode}
	if mode == vote.Explicit {
		copy(o.Box[:], w.Box)
	}
	for i, n := range w.Resolution {
		o.N[i] = n
	}
	return o, nil
}

// StatOptions maps the document onto the statistical variant options.
func (w *Workflow) StatOptions() (vote.StatOptions, error) {
	base, err := w.VoteOptions()
	if err != nil {
		return vote.StatOptions{}, err
	}
	return vote.StatOptions{
		Options:     base,
		SigmaFactor: w.SigmaFactor,
		MeanCenter:  w.MeanCenter,
		Relative:    w.Relative,
	}, nil
}

// Criteria parses every dataset's criterion.
func (w *Workflow) Criteria() ([]*vote.Criterion, error) {
	out := make([]*vote.Criterion, len(w.Datasets))
	for i, ds := range w.Datasets {
		crit, err := vote.ParseCriterion(ds.Criterion)
		if err != nil {
			return nil, err
		}
		out[i] = crit
	}
	return out, nil
}

// ProjectionPoint builds the workflow's anchor, or the default when
// none is configured.
func (w *Workflow) ProjectionPoint() *geodesy.ProjectionPoint {
	if w.Anchor == nil {
		return geodesy.DefaultProjectionPoint()
	}
	return geodesy.NewProjectionPoint(w.Anchor.Lat, w.Anchor.Lon)
}

var configNames = map[string]bool{
	"workflow.json": true,
	"workflow.yaml": true,
	"workflow.yml":  true,
}

// LoadAllConfigFiles walks a directory tree collecting every workflow
// document, keyed by its directory relative to the root.
func LoadAllConfigFiles(rootDir string) (map[string]*Workflow, error) {
	configMap := make(map[string]*Workflow)
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && configNames[info.Name()] {
			relPath, _ := filepath.Rel(rootDir, filepath.Dir(path))
			log.Printf("Loading workflow file: %s under namespace: %s\n", path, relPath)

			w := &Workflow{}
			if e := w.LoadConfigFile(path); e != nil {
				return e
			}
			ns := relPath
			if relPath == "." {
				ns = ""
			}
			w.NameSpace = ns
			configMap[relPath] = w
		}
		return nil
	})

	if err == nil && len(configMap) == 0 {
		err = fmt.Errorf("No workflow file found")
	}

	return configMap, err
}
