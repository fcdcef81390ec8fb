package services

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
)

var ErrWorkerHasOpenTasks = errors.New("worker still has open tasks")

// WorkerService manages the worker pool used by task assignment.
type WorkerService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	auth     *AuthService
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, auth *AuthService) *WorkerService {
	return &WorkerService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		auth:     auth,
	}
}

// ListWorkers lists all worker accounts.
func (s *WorkerService) ListWorkers() ([]models.User, error) {
	return s.userRepo.ListByRole(models.RoleWorker)
}

// CreateWorker provisions a new worker account.
func (s *WorkerService) CreateWorker(input RegisterInput) (*models.User, error) {
	return s.auth.CreateWorker(input)
}

// DeleteWorker removes a worker account. Deletion is blocked while the
// worker has open tasks (anything short of an approved completion), so a
// task can never reference a missing worker.
func (s *WorkerService) DeleteWorker(id uint64) error {
	worker, err := s.userRepo.FindByID(id)
	if err != nil || worker.Role != models.RoleWorker {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find worker: %w", err)
		}
		return ErrWorkerNotFound
	}

	open, err := s.taskRepo.CountOpenByWorker(id)
	if err != nil {
		return fmt.Errorf("failed to count open tasks: %w", err)
	}
	if open > 0 {
		return ErrWorkerHasOpenTasks
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	log.WithField("worker_id", id).Info("worker removed")
	return nil
}
