package models

import (
	"time"
)

type AlertType string

const (
	AlertTypeHighFill AlertType = "high_fill"
	AlertTypeOverflow AlertType = "overflow"
)

type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// Alert flags a bin whose fill level crossed the alert threshold. At most
// one active alert exists per bin at a time.
type Alert struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	BinID     uint64      `gorm:"not null;index" json:"bin_id"`
	Location  string      `gorm:"type:varchar(255);not null" json:"location"`
	Area      string      `gorm:"type:varchar(100);not null" json:"area"`
	FillLevel int         `gorm:"not null" json:"fill_level"`
	Type      AlertType   `gorm:"type:varchar(20);not null" json:"type"`
	Status    AlertStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relations
	Bin Bin `gorm:"foreignKey:BinID" json:"-"`
}
