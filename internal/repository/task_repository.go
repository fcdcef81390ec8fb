package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) WithTx(tx *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: tx}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByComplaintID finds the task working a complaint, if any
func (r *GormTaskRepository) FindByComplaintID(complaintID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("complaint_id = ?", complaintID).
		Order("assigned_at DESC").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves all tasks, newest assignment first
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Order("assigned_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByWorker retrieves a worker's tasks, newest assignment first
func (r *GormTaskRepository) ListByWorker(workerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("worker_id = ?", workerID).
		Order("assigned_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ClaimApproval marks a completed, unreviewed task approved at the given
// time. The state guard lives in the WHERE clause so concurrent reviews
// resolve at the database: at most one claim ever matches.
func (r *GormTaskRepository) ClaimApproval(taskID uint64, at time.Time) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND review = ?",
			taskID, models.TaskStatusCompleted, models.ReviewUnreviewed).
		Updates(map[string]interface{}{
			"review":      models.ReviewApproved,
			"approved_at": at,
		})
	return res.RowsAffected, res.Error
}

// ClaimRejection folds a completed, unreviewed task back to pending and
// clears completed_at, under the same guarded-update rule as approval.
func (r *GormTaskRepository) ClaimRejection(taskID uint64) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND review = ?",
			taskID, models.TaskStatusCompleted, models.ReviewUnreviewed).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusPending,
			"review":       models.ReviewUnreviewed,
			"completed_at": nil,
		})
	return res.RowsAffected, res.Error
}

// CountOpenByWorker counts a worker's tasks that are not yet completed and
// approved
func (r *GormTaskRepository) CountOpenByWorker(workerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("worker_id = ?", workerID).
		Where("status <> ? OR review <> ?", models.TaskStatusCompleted, models.ReviewApproved).
		Count(&count).Error
	return count, err
}
