package services

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"

	"github.com/codecops/cleanify-api/internal/models"
)

const earthRadiusMeters = 6371000.0

// NearestBin identifies the bin closest to a complaint's coordinates.
type NearestBin struct {
	BinID          uint64  `json:"bin_id"`
	Location       string  `json:"location"`
	Area           string  `json:"area"`
	DistanceMeters float64 `json:"distance_meters"`
}

// TaskSuggestion is the prefilled assignment form derived from a complaint.
// It is caller-side convenience only; AssignTask does not require it.
type TaskSuggestion struct {
	ComplaintID uint64              `json:"complaint_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	Priority    models.TaskPriority `json:"priority"`
	NearestBin  *NearestBin         `json:"nearest_bin,omitempty"`
}

// TaskSuggestion derives assignment defaults from a complaint: its
// location and description, priority high, and the nearest bin when both
// the complaint and the fleet carry coordinates.
func (s *LifecycleService) TaskSuggestion(complaintID uint64) (*TaskSuggestion, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	suggestion := &TaskSuggestion{
		ComplaintID: complaint.ID,
		Title:       fmt.Sprintf("Resolve waste complaint at %s", complaint.Location),
		Description: complaint.Description,
		Location:    complaint.Location,
		Priority:    models.PriorityHigh,
	}

	if complaint.HasGeo() {
		nearest, err := s.nearestBin(*complaint.Latitude, *complaint.Longitude)
		if err != nil {
			return nil, err
		}
		suggestion.NearestBin = nearest
	}

	return suggestion, nil
}

func (s *LifecycleService) nearestBin(lat, lon float64) (*NearestBin, error) {
	bins, err := s.binRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list bins: %w", err)
	}

	origin := s2.LatLngFromDegrees(lat, lon)
	var best *NearestBin
	bestDistance := math.Inf(1)

	for _, bin := range bins {
		if bin.Latitude == nil || bin.Longitude == nil {
			continue
		}
		target := s2.LatLngFromDegrees(*bin.Latitude, *bin.Longitude)
		distance := origin.Distance(target).Radians() * earthRadiusMeters
		if distance < bestDistance {
			bestDistance = distance
			best = &NearestBin{
				BinID:          bin.ID,
				Location:       bin.Location,
				Area:           bin.Area,
				DistanceMeters: distance,
			}
		}
	}

	return best, nil
}
