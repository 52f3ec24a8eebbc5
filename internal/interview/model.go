package interview

import (
	"time"
)

// Interview statuses
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

type Interview struct {
	ID             uint64
	UserID         uint64 `gorm:"index"`
	Title          string
	CandidateEmail string
	ScheduledAt    time.Time
	RoomCode       string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InterviewResponse is the API shape for one interview
type InterviewResponse struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	CandidateEmail string    `json:"candidate_email"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	RoomCode       string    `json:"room_code"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (i *Interview) ToResponse() InterviewResponse {
	return InterviewResponse{
		ID:             i.ID,
		Title:          i.Title,
		CandidateEmail: i.CandidateEmail,
		ScheduledAt:    i.ScheduledAt,
		RoomCode:       i.RoomCode,
		Status:         i.Status,
		CreatedAt:      i.CreatedAt,
	}
}
