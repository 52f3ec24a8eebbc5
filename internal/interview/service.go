package interview

import (
	"context"
	defError "errors"
	"time"

	"interview-prep-server/internal/errors"
	"interview-prep-server/internal/meeting"

	"gorm.io/gorm"
)

type ScheduleInput struct {
	Title          string
	CandidateEmail string
	ScheduledAt    time.Time
}

type Service interface {
	Schedule(ctx context.Context, userID uint64, input ScheduleInput) (*Interview, error)
	GetUserInterviews(ctx context.Context, userID uint64, page, pageSize int) ([]Interview, InterviewsMeta, error)
	GetInterview(ctx context.Context, id uint64, userID uint64) (*Interview, error)
	Cancel(ctx context.Context, id uint64, userID uint64) error
}

type DefaultService struct {
	repository    InterviewRepository
	meetingClient meeting.Client
}

// NewService creates a new interview service
func NewService(repository InterviewRepository, meetingClient meeting.Client) Service {
	return &DefaultService{
		repository:    repository,
		meetingClient: meetingClient,
	}
}

// Schedule books an interview slot. The room code comes from the external
// meeting provider, its failure blocks the booking.
func (s *DefaultService) Schedule(ctx context.Context, userID uint64, input ScheduleInput) (*Interview, error) {
	if input.ScheduledAt.Before(time.Now()) {
		return nil, errors.ErrInvalidInput(nil).WithMessage("Interview cannot be scheduled in the past")
	}

	roomCode, err := s.meetingClient.CreateRoom(ctx, input.Title, input.ScheduledAt)
	if err != nil {
		return nil, errors.ErrBadGateway(err).WithMessage("Meeting provider unavailable")
	}

	interview := &Interview{
		UserID:         userID,
		Title:          input.Title,
		CandidateEmail: input.CandidateEmail,
		ScheduledAt:    input.ScheduledAt.UTC(),
		RoomCode:       roomCode,
		Status:         StatusScheduled,
	}

	if err := s.repository.Create(interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (s *DefaultService) GetUserInterviews(ctx context.Context, userID uint64, page, pageSize int) ([]Interview, InterviewsMeta, error) {
	return s.repository.GetByUserID(userID, page, pageSize)
}

// GetInterview fetches one interview, owner only
func (s *DefaultService) GetInterview(ctx context.Context, id uint64, userID uint64) (*Interview, error) {
	interview, err := s.repository.FindByID(id)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound(err).WithMessage("Interview not found")
		}
		return nil, err
	}

	if interview.UserID != userID {
		return nil, errors.ErrForbidden(nil).WithMessage("Not your interview")
	}

	return interview, nil
}

// Cancel marks an interview cancelled, owner only
func (s *DefaultService) Cancel(ctx context.Context, id uint64, userID uint64) error {
	interview, err := s.GetInterview(ctx, id, userID)
	if err != nil {
		return err
	}

	if interview.Status == StatusCancelled {
		return errors.ErrUnprocessableEntity(nil).WithMessage("Interview already cancelled")
	}

	return s.repository.UpdateStatus(id, StatusCancelled)
}
