package service

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/api/repository"
	"ctchen222/Exercise-Tracker/internal/events"
	"ctchen222/Exercise-Tracker/internal/normalize"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ExerciseService defines the interface for logging and querying exercises.
type ExerciseService interface {
	AddExercise(ctx context.Context, userID string, req *models.CreateExerciseRequest) (*models.ExerciseResponse, error)
	GetLogs(ctx context.Context, userID string, query *models.LogsQuery) (*models.LogsResponse, error)
}

type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	publisher    events.Publisher
	clock        clockwork.Clock
}

// NewExerciseService creates a new ExerciseService. clock supplies the date
// used when a request omits one.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository, publisher events.Publisher, clock clockwork.Clock) ExerciseService {
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

// AddExercise logs an exercise for userID. The user is checked before any
// other field, so an unknown user always wins over bad input.
func (s *exerciseService) AddExercise(ctx context.Context, userID string, req *models.CreateExerciseRequest) (*models.ExerciseResponse, error) {
	ctx, span := tracer.Start(ctx, "ExerciseService.AddExercise", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	user, err := lookupUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	description, err := normalize.RequireText(req.Description, "description")
	if err != nil {
		return nil, err
	}
	duration, err := normalize.ParseDuration(string(req.Duration))
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	exercise := &models.Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        normalize.ParseDateOrDefault(string(req.Date), now),
		CreatedAt:   now.UTC(),
	}
	if err := validateRecord(exercise); err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.CreateExercise(ctx, exercise); err != nil {
		span.RecordError(err)
		return nil, storeError("create exercise", err)
	}
	exercisesLogged.Add(ctx, 1)
	exerciseMinutes.Record(ctx, int64(duration))

	date := normalize.FormatDate(exercise.Date)
	slog.InfoContext(ctx, "Exercise logged", "user.id", user.ID, "exercise.id", exercise.ID, "exercise.date", date)

	if err := s.publisher.Publish(ctx, events.TypeExerciseLogged, events.ExerciseLoggedPayload{
		ExerciseID:  exercise.ID,
		UserID:      user.ID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        date,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish exercise_logged event", "exercise.id", exercise.ID, "error", err)
	}

	return &models.ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        date,
	}, nil
}

// GetLogs returns the user's exercises filtered by the optional from/to/limit
// query. Invalid bounds and limits are ignored rather than rejected.
func (s *exerciseService) GetLogs(ctx context.Context, userID string, query *models.LogsQuery) (*models.LogsResponse, error) {
	ctx, span := tracer.Start(ctx, "ExerciseService.GetLogs", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	user, err := lookupUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	filter := normalize.BuildLogFilter(user.ID, query.From, query.To, query.Limit)
	exercises, err := s.exerciseRepo.FindExercises(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, storeError("find exercises", err)
	}

	log := make([]models.LogEntry, 0, len(exercises))
	for _, ex := range exercises {
		log = append(log, models.LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        normalize.FormatDate(ex.Date),
		})
	}
	span.SetAttributes(attribute.Int("log.count", len(log)))

	return &models.LogsResponse{
		Username: user.Username,
		Count:    len(log),
		ID:       user.ID,
		Log:      log,
	}, nil
}
