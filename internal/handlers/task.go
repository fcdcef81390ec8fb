package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"github.com/codecops/cleanify-api/internal/constants"
	"github.com/codecops/cleanify-api/internal/dto"
	apierrors "github.com/codecops/cleanify-api/internal/errors"
	"github.com/codecops/cleanify-api/internal/middleware"
	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/services"
)

type TaskHandler struct {
	lifecycle *services.LifecycleService
	workers   *services.WorkerService
	media     *services.MediaService
}

func NewTaskHandler(lifecycle *services.LifecycleService, workers *services.WorkerService, media *services.MediaService) *TaskHandler {
	return &TaskHandler{
		lifecycle: lifecycle,
		workers:   workers,
		media:     media,
	}
}

// ListTasks returns all tasks for an admin, or the worker's own tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.lifecycle.ListTasks(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// CreateTask assigns a new task to a worker (admin only).
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		WorkerID    uint64  `json:"worker_id" binding:"required"`
		ComplaintID *uint64 `json:"complaint_id"`
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Location    string  `json:"location" binding:"required"`
		Priority    string  `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.lifecycle.AssignTask(services.AssignTaskInput{
		WorkerID:    req.WorkerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Priority:    models.TaskPriority(req.Priority),
		ComplaintID: req.ComplaintID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// StartTask moves a pending task to in_progress.
func (h *TaskHandler) StartTask(c *gin.Context) {
	h.transition(c, func(actor *models.User, taskID uint64) (*models.Task, error) {
		return h.lifecycle.StartTask(actor, taskID)
	})
}

// CompleteTask moves an in_progress task to completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	type CompleteRequest struct {
		Note *string `json:"note"`
	}

	var req CompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "")
			return
		}
	}

	h.transition(c, func(actor *models.User, taskID uint64) (*models.Task, error) {
		return h.lifecycle.CompleteTask(actor, taskID, req.Note)
	})
}

// ApproveTask approves a completed task (admin only), resolving any linked
// complaint and crediting the citizen.
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.lifecycle.ApproveTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// RejectTask sends a completed task back for rework (admin only).
func (h *TaskHandler) RejectTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.lifecycle.RejectTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UploadPhoto stores a completion photo for a task and appends its URL to
// the task's evidence list.
func (h *TaskHandler) UploadPhoto(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Missing file upload")
		return
	}
	if fileHeader.Size > constants.MaxUploadBytes {
		apierrors.BadRequest(c, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	url, err := h.media.SaveTaskPhoto(taskID, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	task, err := h.lifecycle.AttachCompletionPhoto(user, taskID, url)
	if err != nil {
		// The task update failed, so the stored file has no owner.
		if rmErr := h.media.Remove(url); rmErr != nil {
			log.WithError(rmErr).WithField("url", url).Warn("failed to discard rejected upload")
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  url,
		"task": dto.ToTaskDTO(*task),
	})
}

// ServeMedia serves an uploaded completion photo.
func (h *TaskHandler) ServeMedia(c *gin.Context) {
	path, err := h.media.Path(c.Param("filename"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.File(path)
}

// ListWorkers lists the worker pool (admin only).
func (h *TaskHandler) ListWorkers(c *gin.Context) {
	workers, err := h.workers.ListWorkers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": dto.ToUserDTOs(workers)})
}

// CreateWorker provisions a worker account (admin only).
func (h *TaskHandler) CreateWorker(c *gin.Context) {
	type CreateWorkerRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	worker, err := h.workers.CreateWorker(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*worker))
}

// DeleteWorker removes a worker account (admin only); blocked while the
// worker has open tasks.
func (h *TaskHandler) DeleteWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workers.DeleteWorker(workerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Worker removed"})
}

func (h *TaskHandler) transition(c *gin.Context, op func(actor *models.User, taskID uint64) (*models.Task, error)) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := op(user, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
