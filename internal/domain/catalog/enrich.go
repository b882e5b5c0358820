package catalog

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Enrichment fills the optional presentation fields a stored document may
// omit. Values derive from an FNV-1a hash of the course id, so the same
// record always synthesizes the same fallbacks across fetches.

func fieldHash(id, field string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	h.Write([]byte(":"))
	h.Write([]byte(field))
	return h.Sum64()
}

// Enrich populates missing rating, students, difficulty and category on
// the course in place. Fields already present in the document are left
// untouched.
func (c *Course) Enrich() {
	if c.Rating == 0 {
		// One decimal in [3.5, 5.0], mirroring the range the catalog UI expects.
		raw := 3.5 + float64(fieldHash(c.ID, "rating")%20)/10.0
		c.Rating = math.Min(math.Round(raw*10)/10, 5.0)
	}
	if c.Students == 0 {
		c.Students = 100 + int(fieldHash(c.ID, "students")%1000)
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyLevels[fieldHash(c.ID, "difficulty")%uint64(len(DifficultyLevels))]
	}
	if c.Category == "" {
		c.Category = DefaultCategories[fieldHash(c.ID, "category")%uint64(len(DefaultCategories))]
	}
}

// Detail-page fallback copy served when the stored document omits the
// long-form fields.
var (
	defaultLearn = []string{
		"Crear tu primera aplicación Android con Kotlin",
		"Persistencia de datos con SQLite, Realm y Firebase",
		"Uso de Android Studio y componentes principales",
		"Crear apps multi idioma y con autenticación",
	}
	defaultTarget = []string{
		"Estudiantes que quieran aprender desarrollo Android",
		"Programadores que quieran migrar de Java a Kotlin",
	}
	defaultRequirements = []string{
		"Computadora con al menos 4GB de RAM",
		"Conocimientos básicos de programación",
	}
)

// WithDetailFallbacks returns a copy of the course with the detail-only
// fields defaulted. The catalog list keeps the lean original; only the
// detail view pays for the long-form copy.
func (c *Course) WithDetailFallbacks() *Course {
	detail := *c
	if detail.Description == "" {
		detail.Description = fmt.Sprintf(
			"Aprende %s desde cero y domina el desarrollo de aplicaciones modernas con ejemplos prácticos y claros.",
			detail.Name)
	}
	if len(detail.Learn) == 0 {
		detail.Learn = defaultLearn
	}
	if len(detail.Target) == 0 {
		detail.Target = defaultTarget
	}
	if len(detail.Requirements) == 0 {
		detail.Requirements = defaultRequirements
	}
	if detail.Instructor == "" {
		detail.Instructor = "Soluciones Informáticas K&D"
	}
	if detail.LastUpdate == "" {
		detail.LastUpdate = "enero de 2025"
	}
	if detail.Language == "" {
		detail.Language = "Español"
	}
	return &detail
}
