package models

import "time"

type Role string

const (
	RoleStaff     Role = "STAFF"
	RoleSuperuser Role = "SUPERUSER"
)

func ValidRole(r Role) bool {
	return r == RoleStaff || r == RoleSuperuser
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
