package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codecops/cleanify-api/internal/dto"
	apierrors "github.com/codecops/cleanify-api/internal/errors"
	"github.com/codecops/cleanify-api/internal/middleware"
	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/services"
)

type ComplaintHandler struct {
	lifecycle *services.LifecycleService
}

func NewComplaintHandler(lifecycle *services.LifecycleService) *ComplaintHandler {
	return &ComplaintHandler{lifecycle: lifecycle}
}

// ListComplaints returns all complaints for admin/worker actors and the
// actor's own complaints for a citizen, newest first.
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	complaints, err := h.lifecycle.ListComplaints(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dtos := make([]dto.ComplaintDTO, 0, len(complaints))
	for _, complaint := range complaints {
		item := dto.ToComplaintDTO(complaint)
		if task, err := h.lifecycle.LinkedTask(complaint.ID); err == nil && task != nil {
			item.LinkedTaskID = &task.ID
		}
		dtos = append(dtos, item)
	}

	c.JSON(http.StatusOK, gin.H{"complaints": dtos})
}

// SubmitComplaint files a citizen complaint and credits the reward ledger.
func (h *ComplaintHandler) SubmitComplaint(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type SubmitRequest struct {
		Location    string   `json:"location" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		MediaURLs   []string `json:"media_urls"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	complaint, err := h.lifecycle.SubmitComplaint(services.SubmitComplaintInput{
		UserID:      user.ID,
		Location:    req.Location,
		Description: req.Description,
		MediaURLs:   req.MediaURLs,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToComplaintDTO(*complaint))
}

// Respond records an admin reply and advances the complaint status.
func (h *ComplaintHandler) Respond(c *gin.Context) {
	complaintID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type RespondRequest struct {
		Response string `json:"response" binding:"required"`
		Status   string `json:"status"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}
	if req.Status == "" {
		req.Status = string(models.ComplaintStatusInProgress)
	}

	complaint, err := h.lifecycle.Respond(complaintID, req.Response, models.ComplaintStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToComplaintDTO(*complaint))
}

// Resolve marks a complaint resolved without response text.
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	complaintID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	complaint, err := h.lifecycle.ResolveComplaint(complaintID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToComplaintDTO(*complaint))
}

// TaskSuggestion returns prefilled assignment defaults for a complaint.
func (h *ComplaintHandler) TaskSuggestion(c *gin.Context) {
	complaintID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	suggestion, err := h.lifecycle.TaskSuggestion(complaintID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
