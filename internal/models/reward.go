package models

import (
	"time"
)

// RewardEntry is one row in a citizen's append-only point history. The
// running total is always the sum of the deltas; the level is derived from
// the total on read and never stored.
type RewardEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(255);not null" json:"action"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `json:"date"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Reward actions credited by the lifecycle engine.
const (
	RewardActionComplaintSubmitted = "Complaint submitted"
	RewardActionMediaAttached      = "Photo/video added"
	RewardActionLocationShared     = "Location shared"
	RewardActionIssueResolved      = "Issue resolved"
)

// Point values for each crediting action.
const (
	PointsComplaintSubmitted = 50
	PointsMediaAttached      = 20
	PointsLocationShared     = 10
	PointsIssueResolved      = 50
)
