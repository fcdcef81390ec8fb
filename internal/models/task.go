package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the fixed literals.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ReviewState is the admin review outcome of a completed task. A rejected
// task is not a persisted state: rejection folds the task back to
// status=pending with the review reset to unreviewed.
type ReviewState string

const (
	ReviewUnreviewed ReviewState = "unreviewed"
	ReviewApproved   ReviewState = "approved"
)

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	WorkerID    uint64       `gorm:"not null;index" json:"worker_id"`
	WorkerName  string       `gorm:"type:varchar(255);not null" json:"worker_name"`
	ComplaintID *uint64      `gorm:"index" json:"complaint_id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Location    string       `gorm:"type:varchar(255);not null" json:"location"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Review      ReviewState  `gorm:"type:varchar(20);not null;default:'unreviewed'" json:"-"`

	CompletionPhotos MediaURLs `gorm:"type:text" json:"completion_photos"`
	CompletionNote   *string   `gorm:"type:text" json:"completion_note"`

	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Worker    User       `gorm:"foreignKey:WorkerID" json:"-"`
	Complaint *Complaint `gorm:"foreignKey:ComplaintID" json:"-"`
}

// Approved reports whether the task passed admin review. Only a completed
// task can be approved.
func (t *Task) Approved() bool {
	return t.Review == ReviewApproved
}

// Open reports whether the task still needs worker or admin attention:
// anything short of an approved completion.
func (t *Task) Open() bool {
	return t.Status != TaskStatusCompleted || t.Review != ReviewApproved
}
