package interview

import (
	"context"
	defError "errors"
	"testing"
	"time"

	"interview-prep-server/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of InterviewRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(interview *Interview) error {
	args := m.Called(interview)
	return args.Error(0)
}

func (m *MockRepository) FindByID(id uint64) (*Interview, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Interview), args.Error(1)
}

func (m *MockRepository) GetByUserID(userID uint64, page, pageSize int) ([]Interview, InterviewsMeta, error) {
	args := m.Called(userID, page, pageSize)
	return args.Get(0).([]Interview), args.Get(1).(InterviewsMeta), args.Error(2)
}

func (m *MockRepository) UpdateStatus(id uint64, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// MockMeetingClient is a mock implementation of meeting.Client
type MockMeetingClient struct {
	mock.Mock
}

func (m *MockMeetingClient) CreateRoom(ctx context.Context, title string, scheduledAt time.Time) (string, error) {
	args := m.Called(ctx, title, scheduledAt)
	return args.String(0), args.Error(1)
}

func TestSchedule_StoresProviderRoomCode(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	scheduledAt := time.Now().Add(24 * time.Hour)
	client.On("CreateRoom", mock.Anything, "System Design Round", scheduledAt).Return("room-xyz", nil)
	repo.On("Create", mock.MatchedBy(func(i *Interview) bool {
		return i.UserID == 1 && i.RoomCode == "room-xyz" && i.Status == StatusScheduled
	})).Return(nil)

	interview, err := service.Schedule(context.Background(), 1, ScheduleInput{
		Title:          "System Design Round",
		CandidateEmail: "candidate@example.com",
		ScheduledAt:    scheduledAt,
	})

	require.NoError(t, err)
	assert.Equal(t, "room-xyz", interview.RoomCode)
	repo.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSchedule_RejectsPastSlot(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	_, err := service.Schedule(context.Background(), 1, ScheduleInput{
		Title:       "Too late",
		ScheduledAt: time.Now().Add(-time.Hour),
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, defError.As(err, &appErr))
	assert.Equal(t, 400, appErr.Code)
	client.AssertNotCalled(t, "CreateRoom")
}

func TestSchedule_ProviderFailureBlocksBooking(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	client.On("CreateRoom", mock.Anything, mock.Anything, mock.Anything).
		Return("", defError.New("connection refused"))

	_, err := service.Schedule(context.Background(), 1, ScheduleInput{
		Title:       "Screen",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, defError.As(err, &appErr))
	assert.Equal(t, 502, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestGetInterview_OwnerOnly(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	repo.On("FindByID", uint64(5)).Return(&Interview{ID: 5, UserID: 2}, nil)

	_, err := service.GetInterview(context.Background(), 5, 1)

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, defError.As(err, &appErr))
	assert.Equal(t, 403, appErr.Code)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	repo.On("FindByID", uint64(5)).Return(&Interview{ID: 5, UserID: 1, Status: StatusCancelled}, nil)

	err := service.Cancel(context.Background(), 5, 1)

	require.Error(t, err)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestCancel_Success(t *testing.T) {
	repo := new(MockRepository)
	client := new(MockMeetingClient)
	service := NewService(repo, client)

	repo.On("FindByID", uint64(5)).Return(&Interview{ID: 5, UserID: 1, Status: StatusScheduled}, nil)
	repo.On("UpdateStatus", uint64(5), StatusCancelled).Return(nil)

	err := service.Cancel(context.Background(), 5, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
