package dto

import (
	"time"

	"github.com/codecops/cleanify-api/internal/models"
)

// ComplaintDTO represents a complaint in API responses. LinkedTaskID is a
// lookup-only back-reference to the task working this complaint.
type ComplaintDTO struct {
	ID           uint64                 `json:"id"`
	UserID       uint64                 `json:"user_id"`
	UserName     string                 `json:"user_name"`
	Location     string                 `json:"location"`
	Description  string                 `json:"description"`
	Latitude     *float64               `json:"latitude"`
	Longitude    *float64               `json:"longitude"`
	MediaURLs    []string               `json:"media_urls"`
	Status       models.ComplaintStatus `json:"status"`
	Response     *string                `json:"response"`
	RespondedAt  *time.Time             `json:"responded_at"`
	LinkedTaskID *uint64                `json:"linked_task_id,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ToComplaintDTO converts a Complaint model to ComplaintDTO
func ToComplaintDTO(complaint models.Complaint) ComplaintDTO {
	dto := ComplaintDTO{
		ID:          complaint.ID,
		UserID:      complaint.UserID,
		UserName:    complaint.UserName,
		Location:    complaint.Location,
		Description: complaint.Description,
		Latitude:    complaint.Latitude,
		Longitude:   complaint.Longitude,
		MediaURLs:   complaint.MediaURLs,
		Status:      complaint.Status,
		Response:    complaint.Response,
		RespondedAt: complaint.RespondedAt,
		CreatedAt:   complaint.CreatedAt,
	}
	if dto.MediaURLs == nil {
		dto.MediaURLs = []string{}
	}
	return dto
}

// ToComplaintDTOs converts a slice of Complaint models
func ToComplaintDTOs(complaints []models.Complaint) []ComplaintDTO {
	dtos := make([]ComplaintDTO, len(complaints))
	for i, complaint := range complaints {
		dtos[i] = ToComplaintDTO(complaint)
	}
	return dtos
}
