package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Available   bool   `gorm:"not null;default:true" json:"available"`

	CategoryID uint         `json:"categoryId"`
	Category   MenuCategory `json:"-"`

	BranchID uint   `json:"branchId"`
	Branch   Branch `json:"-"`
}
