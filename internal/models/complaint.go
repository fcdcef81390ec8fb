package models

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

// Rank returns the position of the status in the pending -> in_progress ->
// resolved progression. Transitions may only move to a higher rank.
func (s ComplaintStatus) Rank() int {
	switch s {
	case ComplaintStatusPending:
		return 0
	case ComplaintStatusInProgress:
		return 1
	case ComplaintStatusResolved:
		return 2
	}
	return -1
}

type Complaint struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	UserID      uint64          `gorm:"not null;index" json:"user_id"`
	UserName    string          `gorm:"type:varchar(255);not null" json:"user_name"`
	Location    string          `gorm:"type:varchar(255);not null" json:"location"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	MediaURLs   MediaURLs       `gorm:"type:text" json:"media_urls"`
	Status      ComplaintStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Response    *string         `gorm:"type:text" json:"response"`
	RespondedAt *time.Time      `json:"responded_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// HasGeo reports whether the complaint carries a full coordinate pair.
func (c *Complaint) HasGeo() bool {
	return c.Latitude != nil && c.Longitude != nil
}
