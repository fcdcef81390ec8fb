package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/codecops/cleanify-api/internal/errors"
	"github.com/codecops/cleanify-api/internal/middleware"
	"github.com/codecops/cleanify-api/internal/services"
)

type RewardHandler struct {
	rewards *services.RewardService
}

func NewRewardHandler(rewards *services.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// GetMyRewards returns the authenticated citizen's ledger summary along
// with progress towards the next tier.
func (h *RewardHandler) GetMyRewards(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	summary, err := h.rewards.Summary(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":           summary.Points,
		"level":            summary.Level,
		"history":          summary.History,
		"progress_to_next": services.ProgressToNext(summary.Points),
		"milestones":       services.Milestones,
	})
}
