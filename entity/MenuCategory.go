package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name string `json:"name"`

	Menus []Menu `gorm:"foreignKey:CategoryID" json:"-"`
}
