// Package catalog provides the parts catalog, symptom definitions and the
// filtering engine for the parts storefront.
package catalog

// Part is a single catalog entry. Prices are stored in the base currency.
type Part struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Price    float64  `yaml:"price" json:"price"`
	Stock    string   `yaml:"stock" json:"stock"`
	SKU      string   `yaml:"sku" json:"sku"`
	Tags     []string `yaml:"tags" json:"tags"`
	Fits     string   `yaml:"fits" json:"fits"`
}

// Severity classifies how urgent a diagnosis is.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Question is a single wizard step with a fixed set of selectable options.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []string `yaml:"options" json:"options"`
}

// Outcome is a terminal diagnostic result. When holds the question-id to
// required-answer pairs that must all be satisfied for the outcome to apply.
// Outcomes are evaluated in list order and are not required to be mutually
// exclusive or exhaustive.
type Outcome struct {
	When             map[string]string `yaml:"when" json:"when"`
	Diagnosis        string            `yaml:"diagnosis" json:"diagnosis"`
	Severity         Severity          `yaml:"severity" json:"severity"`
	Causes           []string          `yaml:"causes" json:"causes"`
	RecommendedParts []string          `yaml:"recommendedParts" json:"recommendedParts"`
}

// Wizard is the ordered question list and outcome table for a symptom.
type Wizard struct {
	Questions []Question `yaml:"questions" json:"questions"`
	Outcomes  []Outcome  `yaml:"outcomes" json:"outcomes"`
}

// Symptom is a searchable complaint with its guided diagnostic wizard.
type Symptom struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Summary  string `yaml:"summary" json:"summary"`
	Category string `yaml:"category" json:"category"`
	Wizard   Wizard `yaml:"wizard" json:"wizard"`
}

// Mechanic is a directory entry for a partner workshop.
type Mechanic struct {
	Name      string `yaml:"name" json:"name"`
	Specialty string `yaml:"specialty" json:"specialty"`
	Location  string `yaml:"location" json:"location"`
	Phone     string `yaml:"phone" json:"phone"`
}
