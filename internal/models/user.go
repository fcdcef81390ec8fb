package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleWorker  UserRole = "worker"
	RoleCitizen UserRole = "citizen"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Complaints    []Complaint   `gorm:"foreignKey:UserID" json:"-"`
	Tasks         []Task        `gorm:"foreignKey:WorkerID" json:"-"`
	RewardEntries []RewardEntry `gorm:"foreignKey:UserID" json:"-"`
}
