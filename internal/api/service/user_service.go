package service

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/api/repository"
	"ctchen222/Exercise-Tracker/internal/events"
	"ctchen222/Exercise-Tracker/internal/normalize"
	"ctchen222/Exercise-Tracker/internal/validator"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	ListUsers(ctx context.Context) ([]models.UserResponse, error)
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, publisher events.Publisher, clock clockwork.Clock) UserService {
	return &userService{userRepo: userRepo, publisher: publisher, clock: clock}
}

// CreateUser stores a user under a trimmed, non-blank username.
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()

	username, err := normalize.RequireText(req.Username, "username")
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := validateRecord(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		span.RecordError(err)
		return nil, storeError("create user", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	usersCreated.Add(ctx, 1)

	slog.InfoContext(ctx, "User created", "user.id", user.ID, "user.name", user.Username)

	if err := s.publisher.Publish(ctx, events.TypeUserCreated, events.UserCreatedPayload{
		UserID:   user.ID,
		Username: user.Username,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish user_created event", "user.id", user.ID, "error", err)
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns every user in store order.
func (s *userService) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, storeError("list users", err)
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, models.NewUserResponse(&users[i]))
	}
	return out, nil
}

// lookupUser resolves id to an existing user or ErrUnknownUser.
func lookupUser(ctx context.Context, repo repository.UserRepository, id string) (*models.User, error) {
	user, err := repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError("get user", err)
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// validateRecord checks a record against its struct tags before it is written.
func validateRecord(record any) error {
	if err := validator.Struct(record); err != nil {
		return invalidInput(err)
	}
	return nil
}
