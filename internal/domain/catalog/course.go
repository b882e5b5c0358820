// Package catalog defines bootcamp course records and the pure filter engine.
package catalog

import "context"

// Difficulty levels as they appear in the stored documents and the UI.
const (
	DifficultyBeginner     = "Principiante"
	DifficultyIntermediate = "Intermedio"
	DifficultyAdvanced     = "Avanzado"
)

// DifficultyLevels lists the valid difficulty values in UI order.
var DifficultyLevels = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// DefaultCategories are the fallback categories used when a stored
// document omits one.
var DefaultCategories = []string{"Desarrollo Web", "Mobile", "Data Science", "DevOps"}

// DurationBuckets are the free-text keywords the duration filter matches
// by substring containment.
var DurationBuckets = []string{"semanas", "meses", "horas"}

// Course is one bootcamp record. Only ID, Name, Duration and Image are
// guaranteed by the store; the rest are optional enrichment or
// detail-page fields.
type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Image    string `json:"image"`

	Rating     float64 `json:"rating,omitempty"`
	Students   int     `json:"students,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
	Category   string  `json:"category,omitempty"`

	Description   string   `json:"description,omitempty"`
	Learn         []string `json:"learn,omitempty"`
	Target        []string `json:"target,omitempty"`
	Requirements  []string `json:"requirements,omitempty"`
	Instructor    string   `json:"instructor,omitempty"`
	Price         string   `json:"price,omitempty"`
	Certification bool     `json:"certification,omitempty"`
	LastUpdate    string   `json:"lastUpdate,omitempty"`
	Language      string   `json:"language,omitempty"`
}

// Repository defines document-store reads for the bootcamps collection.
// FindAll returns the collection in stable store order; FindByID returns
// nil, nil when the document does not exist.
type Repository interface {
	FindAll(ctx context.Context) ([]*Course, error)
	FindByID(ctx context.Context, id string) (*Course, error)
}
