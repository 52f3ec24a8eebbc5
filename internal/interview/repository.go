package interview

import (
	"time"

	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(interview *Interview) error
	FindByID(id uint64) (*Interview, error)
	GetByUserID(userID uint64, page, pageSize int) ([]Interview, InterviewsMeta, error)
	UpdateStatus(id uint64, status string) error
}

type InterviewRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new interview repository
func NewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: db}
}

func (r *InterviewRepositoryImpl) Create(interview *Interview) error {
	interview.CreatedAt = time.Now().UTC() // Use UTC for consistency
	interview.UpdatedAt = time.Now().UTC()
	return r.db.Create(interview).Error
}

func (r *InterviewRepositoryImpl) FindByID(id uint64) (*Interview, error) {
	var interview Interview
	err := r.db.First(&interview, id).Error
	return &interview, err
}

type InterviewsMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPage   int   `json:"total_page"`
}

func (r *InterviewRepositoryImpl) GetByUserID(userID uint64, page, pageSize int) ([]Interview, InterviewsMeta, error) {
	var interviews []Interview
	var totalRecords int64

	// Count total records
	if err := r.db.Model(&Interview{}).Where("user_id = ?", userID).Count(&totalRecords).Error; err != nil {
		return interviews, InterviewsMeta{}, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("user_id = ?", userID).
		Order("scheduled_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&interviews).Error

	totalPages := int((totalRecords + int64(pageSize) - 1) / int64(pageSize))

	return interviews, InterviewsMeta{
		Total:       totalRecords,
		PerPage:     pageSize,
		TotalPage:   totalPages,
		CurrentPage: page,
	}, err
}

func (r *InterviewRepositoryImpl) UpdateStatus(id uint64, status string) error {
	return r.db.Model(&Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}
