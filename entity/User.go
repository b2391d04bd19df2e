package entity

import (
	"gorm.io/gorm"
)

// User = พนักงานในระบบ (kitchen / manager / admin)
type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"type:varchar(20);not null;default:'kitchen'" json:"role"`

	BranchID *uint   `json:"branchId"`
	Branch   *Branch `json:"-"`
}
