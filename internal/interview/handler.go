package interview

import (
	"net/http"
	"strconv"
	"time"

	"interview-prep-server/internal/errors"
	"interview-prep-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for interviews
type Handler struct {
	service Service
}

// NewHandler creates a new interview handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormSchedule represents interview scheduling form data
type FormSchedule struct {
	Title          string    `json:"title" binding:"required"`
	CandidateEmail string    `json:"candidate_email" binding:"required,email"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
}

// Schedule handles booking a new interview
func (h *Handler) Schedule(c *gin.Context) {
	var form FormSchedule
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	userID := c.GetUint64("user_id")

	interview, err := h.service.Schedule(c.Request.Context(), userID, ScheduleInput{
		Title:          form.Title,
		CandidateEmail: form.CandidateEmail,
		ScheduledAt:    form.ScheduledAt,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"interview": interview.ToResponse()})
}

// List shows the caller's interviews, paginated
func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := utils.GetPaginationParams(c)

	interviews, meta, err := h.service.GetUserInterviews(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	data := make([]InterviewResponse, 0, len(interviews))
	for i := range interviews {
		data = append(data, interviews[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}

// Show returns one interview
func (h *Handler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	userID := c.GetUint64("user_id")

	interview, err := h.service.GetInterview(c.Request.Context(), id, userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interview": interview.ToResponse()})
}

// Cancel marks an interview as cancelled
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.ErrInvalidInput(err))
		return
	}

	userID := c.GetUint64("user_id")

	if err := h.service.Cancel(c.Request.Context(), id, userID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
