package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fgauto/parts-engine/internal/currency"
	"github.com/fgauto/parts-engine/internal/fitment"
)

// Dataset is the full catalog file loaded at startup: parts, symptoms with
// embedded wizards, the fitment overlay, the partner directory and the
// currency table.
type Dataset struct {
	Parts             []Part              `yaml:"parts"`
	PartCategories    []string            `yaml:"partCategories"`
	Symptoms          []Symptom           `yaml:"symptoms"`
	SymptomCategories []string            `yaml:"symptomCategories"`
	Mechanics         []Mechanic          `yaml:"mechanics"`
	Fitment           fitment.OverlayData `yaml:",inline"`
	Currency          currency.Table      `yaml:"currency"`
}

// LoadDataset reads and validates a catalog dataset from a YAML file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset parses a catalog dataset from YAML bytes.
func ParseDataset(data []byte) (*Dataset, error) {
	ds := &Dataset{}
	if err := yaml.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return ds, nil
}

// Validate checks the dataset for duplicate ids and negative prices.
func (ds *Dataset) Validate() error {
	seen := make(map[string]bool, len(ds.Parts))
	for _, p := range ds.Parts {
		if p.ID == "" {
			return fmt.Errorf("part %q has no id", p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate part id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Price < 0 {
			return fmt.Errorf("part %q has negative price", p.ID)
		}
	}

	seenSym := make(map[string]bool, len(ds.Symptoms))
	for _, s := range ds.Symptoms {
		if s.ID == "" {
			return fmt.Errorf("symptom %q has no id", s.Title)
		}
		if seenSym[s.ID] {
			return fmt.Errorf("duplicate symptom id %q", s.ID)
		}
		seenSym[s.ID] = true
	}
	return nil
}
