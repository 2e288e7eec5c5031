//go:build integration

package repository

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/db"
	"ctchen222/Exercise-Tracker/internal/normalize"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestRepositories_Postgres(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("tracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pg) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.Open(ctx, "postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	users := NewUserRepository(pool)
	exercises := NewExerciseRepository(pool)

	user := &models.User{Username: "pg"}
	require.NoError(t, users.CreateUser(ctx, user))

	for i, d := range []int{20, 5, 12} {
		require.NoError(t, exercises.CreateExercise(ctx, &models.Exercise{
			UserID:      user.ID,
			Description: "session",
			Duration:    i + 1,
			Date:        time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC),
		}))
	}

	from := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	got, err := exercises.FindExercises(ctx, normalize.LogFilter{UserID: user.ID, From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].Date.Day())
}
