package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codecops/cleanify-api/internal/services"
)

type BinHandler struct {
	bins *services.BinService
}

func NewBinHandler(bins *services.BinService) *BinHandler {
	return &BinHandler{bins: bins}
}

// ListBins returns the full bin fleet.
func (h *BinHandler) ListBins(c *gin.Context) {
	bins, err := h.bins.ListBins()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bins": bins})
}

// CollectBin empties a bin and resolves its active alerts.
func (h *BinHandler) CollectBin(c *gin.Context) {
	binID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bin, err := h.bins.CollectBin(binID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bin": bin})
}

// ListAlerts returns all alerts, newest first.
func (h *BinHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.bins.ListAlerts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// ResolveAlert resolves an alert and collects its bin.
func (h *BinHandler) ResolveAlert(c *gin.Context) {
	alertID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	alert, err := h.bins.ResolveAlert(alertID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}
