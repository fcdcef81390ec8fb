package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) UserRepository

	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByRole lists users with the given role
	ListByRole(role models.UserRole) ([]models.User, error)

	// Delete soft deletes a user
	Delete(id uint64) error
}

// ComplaintRepository defines the interface for complaint data access
type ComplaintRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) ComplaintRepository

	// Create creates a new complaint
	Create(complaint *models.Complaint) error

	// FindByID finds a complaint by ID
	FindByID(id uint64) (*models.Complaint, error)

	// List retrieves all complaints, newest first
	List() ([]models.Complaint, error)

	// ListByUser retrieves a citizen's complaints, newest first
	ListByUser(userID uint64) ([]models.Complaint, error)

	// Update updates a complaint
	Update(complaint *models.Complaint) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) TaskRepository

	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// FindByComplaintID finds the task working a complaint, if any
	FindByComplaintID(complaintID uint64) (*models.Task, error)

	// List retrieves all tasks, newest assignment first
	List() ([]models.Task, error)

	// ListByWorker retrieves a worker's tasks, newest assignment first
	ListByWorker(workerID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// ClaimApproval marks a completed, unreviewed task approved at the
	// given time. Returns the number of rows claimed; zero means the
	// task was not in a claimable state.
	ClaimApproval(taskID uint64, at time.Time) (int64, error)

	// ClaimRejection folds a completed, unreviewed task back to pending,
	// clearing completed_at. Returns the number of rows claimed.
	ClaimRejection(taskID uint64) (int64, error)

	// CountOpenByWorker counts a worker's tasks that are not yet
	// completed and approved
	CountOpenByWorker(workerID uint64) (int64, error)
}

// RewardRepository defines the interface for reward ledger data access
type RewardRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) RewardRepository

	// Append appends entries to a citizen's history
	Append(entries ...*models.RewardEntry) error

	// ListByUser retrieves a citizen's history, newest first
	ListByUser(userID uint64) ([]models.RewardEntry, error)

	// TotalPoints sums a citizen's point deltas
	TotalPoints(userID uint64) (int, error)
}

// BinRepository defines the interface for bin data access
type BinRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) BinRepository

	// Create creates a new bin
	Create(bin *models.Bin) error

	// FindByID finds a bin by ID
	FindByID(id uint64) (*models.Bin, error)

	// List retrieves all bins ordered by ID
	List() ([]models.Bin, error)

	// Update updates a bin
	Update(bin *models.Bin) error
}

// AlertRepository defines the interface for alert data access
type AlertRepository interface {
	// WithTx returns a repository bound to the given transaction
	WithTx(tx *gorm.DB) AlertRepository

	// Create creates a new alert
	Create(alert *models.Alert) error

	// FindByID finds an alert by ID
	FindByID(id uint64) (*models.Alert, error)

	// List retrieves all alerts, newest first
	List() ([]models.Alert, error)

	// FindActiveByBin finds the active alert for a bin, if any
	FindActiveByBin(binID uint64) (*models.Alert, error)

	// ResolveByBin resolves all active alerts for a bin
	ResolveByBin(binID uint64) error

	// Update updates an alert
	Update(alert *models.Alert) error

	// CountActive counts active alerts
	CountActive() (int64, error)
}
