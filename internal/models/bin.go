package models

import (
	"time"
)

type BinStatus string

const (
	BinStatusEmpty    BinStatus = "empty"
	BinStatusHalf     BinStatus = "half"
	BinStatusFull     BinStatus = "full"
	BinStatusOverflow BinStatus = "overflow"
)

// Fill-level thresholds driving bin status and alert creation.
const (
	FillOverflow   = 90
	FillFull       = 75
	FillHalf       = 40
	FillAlertLevel = 80
)

// BinStatusForFill derives the bin status from a fill percentage.
func BinStatusForFill(fill int) BinStatus {
	switch {
	case fill >= FillOverflow:
		return BinStatusOverflow
	case fill >= FillFull:
		return BinStatusFull
	case fill >= FillHalf:
		return BinStatusHalf
	default:
		return BinStatusEmpty
	}
}

// Bin is one smart bin in the fleet. Fill level and sensor battery are
// reported by sensors (or the built-in simulator).
type Bin struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Location      string     `gorm:"type:varchar(255);not null" json:"location"`
	Area          string     `gorm:"type:varchar(100);not null" json:"area"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	FillLevel     int        `gorm:"not null" json:"fill_level"`
	Status        BinStatus  `gorm:"type:varchar(20);not null" json:"status"`
	LastCollected *time.Time `json:"last_collected"`
	SensorBattery int        `gorm:"not null" json:"sensor_battery"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
