package entity

import (
	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`

	// preload เฉพาะตอนต้องการ
	Tables []Table `json:"-"`
	Menus  []Menu  `json:"-"`
	Orders []Order `json:"-"`
}
