// Package catalog provides the bootcamp catalog repository
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/catalog"
	"github.com/shinescript/shinescript-go/internal/infrastructure/caching/interfaces"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/pkg/config"
)

type CourseRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewCourseRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *CourseRepository {
	return &CourseRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// optionsPayload mirrors the JSON blob stored alongside each bootcamp row.
type optionsPayload struct {
	Rating        float64  `json:"rating,omitempty"`
	Students      int      `json:"students,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Category      string   `json:"category,omitempty"`
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

// FindAll retrieves the full catalog, employing a cache-first strategy.
func (r *CourseRepository) FindAll(ctx context.Context) ([]*catalog.Course, error) {
	if courses, found := r.cache.GetAllCourses(); found {
		return courses, nil
	}

	courses, err := r.loadAllFromDB(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.LoadCatalog(courses)
	return courses, nil
}

// FindByID retrieves a single course. Returns (nil, nil) when no row exists.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*catalog.Course, error) {
	if course, found := r.cache.GetCourse(id); found {
		return course, nil
	}

	course, err := r.loadFromDB(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	r.cache.SetCourse(course)
	return course, nil
}

func (r *CourseRepository) loadAllFromDB(ctx context.Context) ([]*catalog.Course, error) {
	query := `SELECT id, name, duration, image_url, options_payload FROM bootcamps ORDER BY created, id`

	start := time.Now()
	if r.logger != nil {
		r.logger.Database().Debug("Executing catalog query")
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if r.logger != nil {
			r.logger.Database().Error("Catalog query failed", "error", err.Error())
		}
		return nil, fmt.Errorf("failed to query bootcamps: %w", err)
	}
	defer rows.Close()

	var courses []*catalog.Course
	for rows.Next() {
		course, err := r.scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bootcamps: %w", err)
	}

	duration := time.Since(start)
	if r.logger != nil {
		r.logger.Database().Info("Catalog query completed", "count", len(courses), "duration", duration)
		if duration > config.SlowQueryThreshold {
			r.logger.LogSlowQuery(query, duration)
		}
	}

	return courses, nil
}

func (r *CourseRepository) loadFromDB(ctx context.Context, id string) (*catalog.Course, error) {
	query := `SELECT id, name, duration, image_url, options_payload FROM bootcamps WHERE id = ?`

	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, id)
	course, err := r.scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	return course, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CourseRepository) scanCourse(row rowScanner) (*catalog.Course, error) {
	var (
		course      catalog.Course
		imageURL    sql.NullString
		optionsJSON string
	)

	if err := row.Scan(&course.ID, &course.Name, &course.Duration, &imageURL, &optionsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bootcamp row: %w", err)
	}
	course.Image = imageURL.String

	var options optionsPayload
	if optionsJSON != "" {
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, fmt.Errorf("failed to parse options payload for bootcamp %s: %w", course.ID, err)
		}
	}

	course.Rating = options.Rating
	course.Students = options.Students
	course.Difficulty = options.Difficulty
	course.Category = options.Category
	course.Description = options.Description
	course.Learn = options.Learn
	course.Target = options.Target
	course.Requirements = options.Requirements
	course.Instructor = options.Instructor
	course.Price = options.Price
	course.Certification = options.Certification
	course.LastUpdate = options.LastUpdate
	course.Language = options.Language

	course.Enrich()
	return &course, nil
}
