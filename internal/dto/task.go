package dto

import (
	"time"

	"github.com/codecops/cleanify-api/internal/models"
)

// TaskDTO represents a task in API responses. The review state is exposed
// as the approved field: true once admin-approved, null while awaiting
// review (a rejected task has already folded back to pending).
type TaskDTO struct {
	ID               uint64              `json:"id"`
	WorkerID         uint64              `json:"worker_id"`
	WorkerName       string              `json:"worker_name"`
	ComplaintID      *uint64             `json:"complaint_id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Location         string              `json:"location"`
	Priority         models.TaskPriority `json:"priority"`
	Status           models.TaskStatus   `json:"status"`
	Approved         *bool               `json:"approved"`
	CompletionPhotos []string            `json:"completion_photos"`
	CompletionNote   *string             `json:"completion_note"`
	AssignedAt       time.Time           `json:"assigned_at"`
	CompletedAt      *time.Time          `json:"completed_at"`
	ApprovedAt       *time.Time          `json:"approved_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		WorkerID:         task.WorkerID,
		WorkerName:       task.WorkerName,
		ComplaintID:      task.ComplaintID,
		Title:            task.Title,
		Description:      task.Description,
		Location:         task.Location,
		Priority:         task.Priority,
		Status:           task.Status,
		CompletionPhotos: task.CompletionPhotos,
		CompletionNote:   task.CompletionNote,
		AssignedAt:       task.AssignedAt,
		CompletedAt:      task.CompletedAt,
		ApprovedAt:       task.ApprovedAt,
	}
	if dto.CompletionPhotos == nil {
		dto.CompletionPhotos = []string{}
	}
	if task.Approved() {
		approved := true
		dto.Approved = &approved
	}
	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
