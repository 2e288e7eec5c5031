package repository

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . UserRepository,ExerciseRepository

var tracer = otel.Tracer("api.repository")

// ErrMalformedID is returned when an id cannot name a stored record.
var ErrMalformedID = errors.New("malformed id")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type sqlUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQL-backed UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

// CreateUser assigns an id and creation time to user and inserts it.
func (r *sqlUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser")
	defer span.End()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.CreatedAt.UnixNano()); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id. A missing user is reported as (nil, nil).
func (r *sqlUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByID")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}

	var row userRow
	query := r.db.Rebind(`SELECT id, username, created_at FROM users WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No user found is not an application error
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	user := row.toModel()
	return &user, nil
}

// ListUsers returns every user in creation order.
func (r *sqlUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.ListUsers")
	defer span.End()

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, username, created_at FROM users ORDER BY created_at, id`); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

type userRow struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	CreatedAt int64  `db:"created_at"`
}

func (r userRow) toModel() models.User {
	return models.User{
		ID:        r.ID,
		Username:  r.Username,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}
