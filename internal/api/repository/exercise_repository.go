package repository

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/normalize"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
)

// ExerciseRepository defines the interface for exercise data operations.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *models.Exercise) error
	FindExercises(ctx context.Context, filter normalize.LogFilter) ([]models.Exercise, error)
}

type sqlExerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository creates a new SQL-backed ExerciseRepository.
func NewExerciseRepository(db *sqlx.DB) ExerciseRepository {
	return &sqlExerciseRepository{db: db}
}

// CreateExercise assigns an id and creation time to exercise and inserts it.
// Only the calendar date of exercise.Date is kept.
func (r *sqlExerciseRepository) CreateExercise(ctx context.Context, exercise *models.Exercise) error {
	ctx, span := tracer.Start(ctx, "ExerciseRepository.CreateExercise")
	defer span.End()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
	exercise.Date = normalize.TruncateDay(exercise.Date)

	query := r.db.Rebind(`INSERT INTO exercises (id, user_id, description, duration, performed_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date.Format(normalize.StoreDateLayout),
		exercise.CreatedAt.UnixNano(),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// FindExercises returns the exercises matching filter, oldest first.
func (r *sqlExerciseRepository) FindExercises(ctx context.Context, filter normalize.LogFilter) ([]models.Exercise, error) {
	ctx, span := tracer.Start(ctx, "ExerciseRepository.FindExercises")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", filter.UserID),
		attribute.Bool("filter.date_range", filter.HasDateRange()),
		attribute.Int("filter.limit", filter.Limit),
	)

	query, args := buildExerciseQuery(filter)

	var rows []exerciseRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find exercises: %w", err)
	}

	exercises := make([]models.Exercise, 0, len(rows))
	for _, row := range rows {
		ex, err := row.toModel()
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

// buildExerciseQuery renders filter as a SELECT with "?" placeholders.
func buildExerciseQuery(filter normalize.LogFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT id, user_id, description, duration, performed_on, created_at FROM exercises WHERE user_id = ?`)
	args := []any{filter.UserID}

	if filter.From != nil {
		b.WriteString(` AND performed_on >= ?`)
		args = append(args, filter.From.Format(normalize.StoreDateLayout))
	}
	if filter.To != nil {
		b.WriteString(` AND performed_on <= ?`)
		args = append(args, filter.To.Format(normalize.StoreDateLayout))
	}

	b.WriteString(` ORDER BY performed_on ASC, created_at ASC`)

	if filter.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}
	return b.String(), args
}

type exerciseRow struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	Description string `db:"description"`
	Duration    int    `db:"duration"`
	PerformedOn string `db:"performed_on"`
	CreatedAt   int64  `db:"created_at"`
}

func (r exerciseRow) toModel() (models.Exercise, error) {
	date, err := time.Parse(normalize.StoreDateLayout, r.PerformedOn)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("failed to parse stored date %q for exercise %s: %w", r.PerformedOn, r.ID, err)
	}
	return models.Exercise{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Duration:    r.Duration,
		Date:        date,
		CreatedAt:   time.Unix(0, r.CreatedAt).UTC(),
	}, nil
}
