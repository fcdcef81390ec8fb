package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
)

var (
	ErrBinNotFound   = errors.New("bin not found")
	ErrAlertNotFound = errors.New("alert not found")
)

// BinService manages the bin fleet and its overflow alerts.
type BinService struct {
	binRepo   repository.BinRepository
	alertRepo repository.AlertRepository
}

// NewBinService creates a new BinService
func NewBinService(binRepo repository.BinRepository, alertRepo repository.AlertRepository) *BinService {
	return &BinService{
		binRepo:   binRepo,
		alertRepo: alertRepo,
	}
}

// ListBins returns the full fleet.
func (s *BinService) ListBins() ([]models.Bin, error) {
	return s.binRepo.List()
}

// CollectBin empties a bin: fill resets to zero, status to empty,
// lastCollected stamps now, and the bin's active alerts are resolved.
func (s *BinService) CollectBin(binID uint64) (*models.Bin, error) {
	bin, err := s.binRepo.FindByID(binID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBinNotFound
		}
		return nil, fmt.Errorf("failed to find bin: %w", err)
	}

	now := time.Now()
	bin.FillLevel = 0
	bin.Status = models.BinStatusEmpty
	bin.LastCollected = &now

	if err := s.binRepo.Update(bin); err != nil {
		return nil, fmt.Errorf("failed to update bin: %w", err)
	}
	if err := s.alertRepo.ResolveByBin(bin.ID); err != nil {
		return nil, fmt.Errorf("failed to resolve bin alerts: %w", err)
	}

	log.WithField("bin_id", bin.ID).Info("bin collected")
	return bin, nil
}

// ListAlerts returns all alerts, newest first.
func (s *BinService) ListAlerts() ([]models.Alert, error) {
	return s.alertRepo.List()
}

// ResolveAlert resolves an alert and collects its bin.
func (s *BinService) ResolveAlert(alertID uint64) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	alert.Status = models.AlertStatusResolved
	if err := s.alertRepo.Update(alert); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}

	if _, err := s.CollectBin(alert.BinID); err != nil && !errors.Is(err, ErrBinNotFound) {
		return nil, err
	}
	return alert, nil
}

// RecordFill applies a sensor fill reading to a bin: the status is restated
// from the thresholds and an alert is raised at the alert level when the
// bin has no active one.
func (s *BinService) RecordFill(bin *models.Bin, fill int) error {
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}

	bin.FillLevel = fill
	bin.Status = models.BinStatusForFill(fill)
	if err := s.binRepo.Update(bin); err != nil {
		return fmt.Errorf("failed to update bin: %w", err)
	}

	if fill < models.FillAlertLevel {
		return nil
	}

	if _, err := s.alertRepo.FindActiveByBin(bin.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check active alerts: %w", err)
	}

	alertType := models.AlertTypeHighFill
	if fill >= models.FillOverflow {
		alertType = models.AlertTypeOverflow
	}
	alert := &models.Alert{
		BinID:     bin.ID,
		Location:  bin.Location,
		Area:      bin.Area,
		FillLevel: fill,
		Type:      alertType,
		Status:    models.AlertStatusActive,
	}
	if err := s.alertRepo.Create(alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	log.WithFields(log.Fields{
		"bin_id": bin.ID,
		"fill":   fill,
		"type":   string(alertType),
	}).Info("bin alert raised")
	return nil
}
