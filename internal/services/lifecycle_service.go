package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
)

var (
	ErrComplaintNotFound        = errors.New("complaint not found")
	ErrTaskNotFound             = errors.New("task not found")
	ErrWorkerNotFound           = errors.New("worker not found")
	ErrLocationRequired         = errors.New("location is required")
	ErrDescriptionRequired      = errors.New("description is required")
	ErrTitleRequired            = errors.New("title is required")
	ErrResponseRequired         = errors.New("response text is required")
	ErrIncompleteCoordinates    = errors.New("latitude and longitude must be provided together")
	ErrInvalidPriority          = errors.New("invalid task priority")
	ErrInvalidComplaintStatus   = errors.New("status must be in_progress or resolved")
	ErrComplaintResolved        = errors.New("complaint is already resolved")
	ErrComplaintAlreadyAssigned = errors.New("an open task already targets this complaint")
	ErrNotAssignedWorker        = errors.New("task is assigned to a different worker")
	ErrTaskNotPending           = errors.New("task can only be started from pending")
	ErrTaskNotInProgress        = errors.New("task can only be completed from in_progress")
	ErrTaskAlreadyCompleted     = errors.New("completion evidence cannot be added to a completed task")
	ErrTaskNotCompleted         = errors.New("task is not awaiting review")
	ErrTaskAlreadyApproved      = errors.New("task has already been approved")
)

// LifecycleService implements the task and complaint lifecycle rules: how a
// complaint becomes a task, how a task moves through worker execution, how
// admin review gates completion, and how approvals feed the reward ledger.
type LifecycleService struct {
	db            *gorm.DB
	complaintRepo repository.ComplaintRepository
	taskRepo      repository.TaskRepository
	rewardRepo    repository.RewardRepository
	userRepo      repository.UserRepository
	binRepo       repository.BinRepository
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	db *gorm.DB,
	complaintRepo repository.ComplaintRepository,
	taskRepo repository.TaskRepository,
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	binRepo repository.BinRepository,
) *LifecycleService {
	return &LifecycleService{
		db:            db,
		complaintRepo: complaintRepo,
		taskRepo:      taskRepo,
		rewardRepo:    rewardRepo,
		userRepo:      userRepo,
		binRepo:       binRepo,
	}
}

// SubmitComplaintInput represents input for submitting a complaint
type SubmitComplaintInput struct {
	UserID      uint64
	Location    string
	Description string
	MediaURLs   []string
	Latitude    *float64
	Longitude   *float64
}

// SubmitComplaint creates a complaint and credits the citizen's reward
// ledger: +50 for the submission, +20 when media is attached, +10 when a
// coordinate pair is shared. The complaint and all credits are written in a
// single transaction.
func (s *LifecycleService) SubmitComplaint(input SubmitComplaintInput) (*models.Complaint, error) {
	location := strings.TrimSpace(input.Location)
	description := strings.TrimSpace(input.Description)
	if location == "" {
		return nil, ErrLocationRequired
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, ErrIncompleteCoordinates
	}

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submitting user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to load submitting user: %w", err)
	}

	complaint := &models.Complaint{
		UserID:      user.ID,
		UserName:    user.Name,
		Location:    location,
		Description: description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		MediaURLs:   models.MediaURLs(input.MediaURLs),
		Status:      models.ComplaintStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.complaintRepo.WithTx(tx).Create(complaint); err != nil {
			return fmt.Errorf("failed to create complaint: %w", err)
		}

		credits := []*models.RewardEntry{
			{UserID: user.ID, Action: models.RewardActionComplaintSubmitted, Points: models.PointsComplaintSubmitted},
		}
		if len(complaint.MediaURLs) > 0 {
			credits = append(credits, &models.RewardEntry{
				UserID: user.ID, Action: models.RewardActionMediaAttached, Points: models.PointsMediaAttached,
			})
		}
		if complaint.HasGeo() {
			credits = append(credits, &models.RewardEntry{
				UserID: user.ID, Action: models.RewardActionLocationShared, Points: models.PointsLocationShared,
			})
		}
		if err := s.rewardRepo.WithTx(tx).Append(credits...); err != nil {
			return fmt.Errorf("failed to credit reward ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"complaint_id": complaint.ID,
		"user_id":      user.ID,
	}).Info("complaint submitted")
	return complaint, nil
}

// Respond records an admin reply on a complaint and advances its status.
// The target status must be in_progress or resolved, and a complaint never
// moves backwards: once resolved it stays resolved.
func (s *LifecycleService) Respond(complaintID uint64, text string, nextStatus models.ComplaintStatus) (*models.Complaint, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrResponseRequired
	}
	if nextStatus != models.ComplaintStatusInProgress && nextStatus != models.ComplaintStatusResolved {
		return nil, ErrInvalidComplaintStatus
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status.Rank() >= models.ComplaintStatusResolved.Rank() {
		return nil, ErrComplaintResolved
	}
	if nextStatus.Rank() < complaint.Status.Rank() {
		return nil, ErrInvalidComplaintStatus
	}

	now := time.Now()
	complaint.Response = &text
	complaint.RespondedAt = &now
	complaint.Status = nextStatus

	if err := s.complaintRepo.Update(complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}

// ResolveComplaint marks a complaint resolved without requiring response
// text. Rejected once the complaint is already resolved.
func (s *LifecycleService) ResolveComplaint(complaintID uint64) (*models.Complaint, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status.Rank() >= models.ComplaintStatusResolved.Rank() {
		return nil, ErrComplaintResolved
	}

	complaint.Status = models.ComplaintStatusResolved
	if err := s.complaintRepo.Update(complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}

// AssignTaskInput represents input for assigning a task to a worker
type AssignTaskInput struct {
	WorkerID    uint64
	Title       string
	Description string
	Location    string
	Priority    models.TaskPriority
	ComplaintID *uint64
}

// AssignTask creates a pending task for a worker. When derived from a
// complaint the priority defaults to high, otherwise medium; an explicit
// priority always wins. Creating the task does not touch the linked
// complaint's status; only approval does.
func (s *LifecycleService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, ErrLocationRequired
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	worker, err := s.userRepo.FindByID(input.WorkerID)
	if err != nil || worker.Role != models.RoleWorker {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load worker: %w", err)
		}
		return nil, ErrWorkerNotFound
	}

	if input.ComplaintID != nil {
		if _, err := s.findComplaint(*input.ComplaintID); err != nil {
			return nil, err
		}
		// Best-effort guard; the check-then-create is not atomic.
		if existing, err := s.taskRepo.FindByComplaintID(*input.ComplaintID); err == nil && existing.Open() {
			return nil, ErrComplaintAlreadyAssigned
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check complaint tasks: %w", err)
		}
	}

	priority := input.Priority
	if priority == "" {
		if input.ComplaintID != nil {
			priority = models.PriorityHigh
		} else {
			priority = models.PriorityMedium
		}
	}

	task := &models.Task{
		WorkerID:    worker.ID,
		WorkerName:  worker.Name,
		ComplaintID: input.ComplaintID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		Priority:    priority,
		Status:      models.TaskStatusPending,
		Review:      models.ReviewUnreviewed,
		AssignedAt:  time.Now(),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.WithFields(log.Fields{
		"task_id":   task.ID,
		"worker_id": worker.ID,
		"priority":  string(task.Priority),
	}).Info("task assigned")
	return task, nil
}

// StartTask moves a pending task to in_progress. Only the assigned worker
// (or an admin) may start it.
func (s *LifecycleService) StartTask(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureWorkerAccess(actor, task); err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, ErrTaskNotPending
	}

	task.Status = models.TaskStatusInProgress
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// AttachCompletionPhoto appends an uploaded evidence URL to a task.
// Evidence attaches while the task is pending or in_progress; a completed
// task is locked for review.
func (s *LifecycleService) AttachCompletionPhoto(actor *models.User, taskID uint64, url string) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureWorkerAccess(actor, task); err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted {
		return nil, ErrTaskAlreadyCompleted
	}

	task.CompletionPhotos = append(task.CompletionPhotos, url)
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// CompleteTask moves an in_progress task to completed and stamps
// completedAt. The task then awaits admin review; further worker actions
// are rejected until a reject reopens it.
func (s *LifecycleService) CompleteTask(actor *models.User, taskID uint64, note *string) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureWorkerAccess(actor, task); err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusInProgress {
		return nil, ErrTaskNotInProgress
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now
	task.CompletionNote = note
	task.Review = models.ReviewUnreviewed

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.WithField("task_id", task.ID).Info("task completed, awaiting review")
	return task, nil
}

// ApproveTask approves a completed task. When the task is linked to a
// complaint, the complaint is resolved and the citizen is credited +50 in
// the same transaction: the cascade fully applies or not at all. The
// approval itself is a guarded update whose state check runs in the WHERE
// clause, so concurrent reviews of the same completion cycle settle at the
// database and the ledger is never double-credited.
func (s *LifecycleService) ApproveTask(taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := reviewClaimError(task); err != nil {
		return nil, err
	}

	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		claimed, err := s.taskRepo.WithTx(tx).ClaimApproval(task.ID, now)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if claimed == 0 {
			// Lost a race with another reviewer; reload for the exact error.
			fresh, err := s.taskRepo.WithTx(tx).FindByID(task.ID)
			if err != nil {
				return fmt.Errorf("failed to reload task: %w", err)
			}
			if cerr := reviewClaimError(fresh); cerr != nil {
				return cerr
			}
			return ErrTaskNotCompleted
		}

		if task.ComplaintID == nil {
			return nil
		}

		complaint, err := s.complaintRepo.WithTx(tx).FindByID(*task.ComplaintID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrComplaintNotFound
			}
			return fmt.Errorf("failed to load linked complaint: %w", err)
		}

		if complaint.Status != models.ComplaintStatusResolved {
			complaint.Status = models.ComplaintStatusResolved
			if err := s.complaintRepo.WithTx(tx).Update(complaint); err != nil {
				return fmt.Errorf("failed to resolve linked complaint: %w", err)
			}
		}

		entry := &models.RewardEntry{
			UserID: complaint.UserID,
			Action: models.RewardActionIssueResolved,
			Points: models.PointsIssueResolved,
		}
		if err := s.rewardRepo.WithTx(tx).Append(entry); err != nil {
			return fmt.Errorf("failed to credit reward ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	task.Review = models.ReviewApproved
	task.ApprovedAt = &now

	log.WithField("task_id", task.ID).Info("task approved")
	return task, nil
}

// reviewClaimError maps a task's state to the error an approve or reject
// attempt should return when the task is not claimable.
func reviewClaimError(task *models.Task) error {
	if task.Review == models.ReviewApproved {
		return ErrTaskAlreadyApproved
	}
	if task.Status != models.TaskStatusCompleted {
		return ErrTaskNotCompleted
	}
	return nil
}

// RejectTask sends a completed task back for rework: status returns to
// pending and completedAt is cleared. Completion photos and note are
// retained for audit. The same worker restarts via StartTask. The reset is
// the same guarded update as approval, so a reject racing an approve can
// never undo a credited completion.
func (s *LifecycleService) RejectTask(taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := reviewClaimError(task); err != nil {
		return nil, err
	}

	claimed, err := s.taskRepo.ClaimRejection(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if claimed == 0 {
		fresh, err := s.taskRepo.FindByID(task.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload task: %w", err)
		}
		if cerr := reviewClaimError(fresh); cerr != nil {
			return nil, cerr
		}
		return nil, ErrTaskNotCompleted
	}

	task.Status = models.TaskStatusPending
	task.Review = models.ReviewUnreviewed
	task.CompletedAt = nil

	log.WithField("task_id", task.ID).Info("task rejected, reset to pending")
	return task, nil
}

// ListTasks returns all tasks for an admin and only the actor's own tasks
// for a worker.
func (s *LifecycleService) ListTasks(actor *models.User) ([]models.Task, error) {
	if actor.Role == models.RoleWorker {
		return s.taskRepo.ListByWorker(actor.ID)
	}
	return s.taskRepo.List()
}

// GetTask returns a task by ID.
func (s *LifecycleService) GetTask(taskID uint64) (*models.Task, error) {
	return s.findTask(taskID)
}

// ListComplaints returns all complaints for admin and worker actors and
// only the actor's own complaints for a citizen.
func (s *LifecycleService) ListComplaints(actor *models.User) ([]models.Complaint, error) {
	if actor.Role == models.RoleCitizen {
		return s.complaintRepo.ListByUser(actor.ID)
	}
	return s.complaintRepo.List()
}

// LinkedTask returns the task working a complaint, or nil when none exists.
func (s *LifecycleService) LinkedTask(complaintID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByComplaintID(complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up linked task: %w", err)
	}
	return task, nil
}

func (s *LifecycleService) findComplaint(id uint64) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}
	return complaint, nil
}

func (s *LifecycleService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *LifecycleService) ensureWorkerAccess(actor *models.User, task *models.Task) error {
	if actor == nil {
		return ErrNotAssignedWorker
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.ID != task.WorkerID {
		return ErrNotAssignedWorker
	}
	return nil
}
