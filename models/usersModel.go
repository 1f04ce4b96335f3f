package models

import (
	"time"
)

// Roles a user can hold.
const (
	RoleAdmin     = "admin"
	RoleClinician = "clinician"
)

// User represents a staff account
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex;column:username" json:"username"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	Role         string    `gorm:"size:20;not null;default:clinician;check:role IN ('admin', 'clinician');column:role" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClinician
}
