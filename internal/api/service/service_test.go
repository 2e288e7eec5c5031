package service

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/api/repository"
	"ctchen222/Exercise-Tracker/internal/api/repository/mocks"
	"ctchen222/Exercise-Tracker/internal/events"
	"ctchen222/Exercise-Tracker/internal/normalize"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	types []string
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.types = append(p.types, eventType)
	return p.err
}

var fixedNow = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

func TestUserService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	pub := &recordingPublisher{}
	svc := NewUserService(users, pub, clockwork.NewFakeClockAt(fixedNow))

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			assert.Equal(t, "fcc_test", u.Username)
			assert.True(t, fixedNow.Equal(u.CreatedAt))
			_, err := uuid.Parse(u.ID)
			assert.NoError(t, err)
			return nil
		})

	resp, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{Username: "  fcc_test  "})
	require.NoError(t, err)
	assert.Equal(t, "fcc_test", resp.Username)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, []string{events.TypeUserCreated}, pub.types)
}

func TestUserService_CreateUser_Blank(t *testing.T) {
	for _, username := range []string{"", "   ", "\t\n"} {
		ctrl := gomock.NewController(t)
		svc := NewUserService(mocks.NewMockUserRepository(ctrl), events.NopPublisher{}, clockwork.NewFakeClock())

		_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{Username: username})
		assert.ErrorIs(t, err, ErrInvalidInput, "username %q", username)
	}
}

func TestUserService_CreateUser_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	pub := &recordingPublisher{}
	svc := NewUserService(users, pub, clockwork.NewFakeClock())

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{Username: "x"})
	assert.ErrorIs(t, err, ErrStore)
	assert.Empty(t, pub.types)
}

func TestUserService_CreateUser_PublishFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(users, &recordingPublisher{err: errors.New("redis down")}, clockwork.NewFakeClock())

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{Username: "x"})
	assert.NoError(t, err)
}

func TestUserService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(users, events.NopPublisher{}, clockwork.NewFakeClock())

	users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{
		{ID: "a", Username: "alice"},
		{ID: "b", Username: "bob"},
	}, nil)

	got, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.UserResponse{{Username: "alice", ID: "a"}, {Username: "bob", ID: "b"}}, got)
}

func newExerciseService(t *testing.T) (*mocks.MockUserRepository, *mocks.MockExerciseRepository, *recordingPublisher, ExerciseService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	exercises := mocks.NewMockExerciseRepository(ctrl)
	pub := &recordingPublisher{}
	svc := NewExerciseService(users, exercises, pub, clockwork.NewFakeClockAt(fixedNow))
	return users, exercises, pub, svc
}

func TestExerciseService_AddExercise(t *testing.T) {
	userID := uuid.NewString()
	owner := &models.User{ID: userID, Username: "fcc_test"}

	tests := []struct {
		name     string
		req      models.CreateExerciseRequest
		wantDate string
	}{
		{
			name:     "explicit date",
			req:      models.CreateExerciseRequest{Description: "test run", Duration: "30", Date: "2023-01-15"},
			wantDate: "Sun Jan 15 2023",
		},
		{
			name:     "missing date defaults to today",
			req:      models.CreateExerciseRequest{Description: "test run", Duration: "30"},
			wantDate: "Mon Jan 01 2024",
		},
		{
			name:     "unparseable date defaults to today",
			req:      models.CreateExerciseRequest{Description: "test run", Duration: "30", Date: "someday"},
			wantDate: "Mon Jan 01 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, exercises, pub, svc := newExerciseService(t)
			users.EXPECT().GetUserByID(gomock.Any(), userID).Return(owner, nil)
			exercises.EXPECT().
				CreateExercise(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, ex *models.Exercise) error {
					assert.Equal(t, userID, ex.UserID)
					assert.Equal(t, "test run", ex.Description)
					assert.NotEqual(t, userID, ex.ID)
					return nil
				})

			resp, err := svc.AddExercise(context.Background(), userID, &tt.req)
			require.NoError(t, err)
			assert.Equal(t, &models.ExerciseResponse{
				ID:          userID,
				Username:    "fcc_test",
				Description: "test run",
				Duration:    30,
				Date:        tt.wantDate,
			}, resp)
			assert.Equal(t, []string{events.TypeExerciseLogged}, pub.types)
		})
	}
}

func TestExerciseService_AddExercise_UnknownUserWins(t *testing.T) {
	users, _, _, svc := newExerciseService(t)
	users.EXPECT().GetUserByID(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	_, err := svc.AddExercise(context.Background(), uuid.NewString(), &models.CreateExerciseRequest{Description: "ok", Duration: "5"})
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = svc.AddExercise(context.Background(), uuid.NewString(), &models.CreateExerciseRequest{})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestExerciseService_AddExercise_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateExerciseRequest
	}{
		{name: "blank description", req: models.CreateExerciseRequest{Description: "  ", Duration: "30"}},
		{name: "missing duration", req: models.CreateExerciseRequest{Description: "run"}},
		{name: "non-numeric duration", req: models.CreateExerciseRequest{Description: "run", Duration: "long"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, _, _, svc := newExerciseService(t)
			id := uuid.NewString()
			users.EXPECT().GetUserByID(gomock.Any(), id).Return(&models.User{ID: id, Username: "u"}, nil)

			_, err := svc.AddExercise(context.Background(), id, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExerciseService_AddExercise_MalformedIDIsStoreError(t *testing.T) {
	users, _, _, svc := newExerciseService(t)
	users.EXPECT().GetUserByID(gomock.Any(), "bogus").Return(nil, repository.ErrMalformedID)

	_, err := svc.AddExercise(context.Background(), "bogus", &models.CreateExerciseRequest{Description: "run", Duration: "1"})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, repository.ErrMalformedID)
}

func TestExerciseService_GetLogs(t *testing.T) {
	users, exercises, _, svc := newExerciseService(t)
	userID := uuid.NewString()
	users.EXPECT().GetUserByID(gomock.Any(), userID).Return(&models.User{ID: userID, Username: "fcc_test"}, nil)

	exercises.EXPECT().
		FindExercises(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f normalize.LogFilter) ([]models.Exercise, error) {
			assert.Equal(t, userID, f.UserID)
			assert.Nil(t, f.From, "invalid from must be dropped")
			require.NotNil(t, f.To)
			assert.Equal(t, "2023-02-01", f.To.Format(normalize.StoreDateLayout))
			assert.Equal(t, 1, f.Limit)
			return []models.Exercise{
				{Description: "first", Duration: 10, Date: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
			}, nil
		})

	resp, err := svc.GetLogs(context.Background(), userID, &models.LogsQuery{From: "nope", To: "2023-02-01", Limit: "1"})
	require.NoError(t, err)
	assert.Equal(t, &models.LogsResponse{
		Username: "fcc_test",
		Count:    1,
		ID:       userID,
		Log:      []models.LogEntry{{Description: "first", Duration: 10, Date: "Sun Jan 15 2023"}},
	}, resp)
}

func TestExerciseService_GetLogs_UnknownUser(t *testing.T) {
	users, _, _, svc := newExerciseService(t)
	users.EXPECT().GetUserByID(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := svc.GetLogs(context.Background(), uuid.NewString(), &models.LogsQuery{})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestExerciseService_GetLogs_StoreFailure(t *testing.T) {
	users, exercises, _, svc := newExerciseService(t)
	id := uuid.NewString()
	users.EXPECT().GetUserByID(gomock.Any(), id).Return(&models.User{ID: id, Username: "u"}, nil)
	exercises.EXPECT().FindExercises(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	_, err := svc.GetLogs(context.Background(), id, &models.LogsQuery{})
	assert.ErrorIs(t, err, ErrStore)
}
