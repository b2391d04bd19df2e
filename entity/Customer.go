package entity

import (
	"gorm.io/gorm"
)

// Customer = ลูกค้าแบบ session ต่อโต๊ะ (สแกน QR แล้วได้ session key)
type Customer struct {
	gorm.Model
	SessionKey string `gorm:"type:varchar(64);uniqueIndex" json:"sessionKey"`
	Status     string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	TableID *uint  `gorm:"index" json:"tableId"`
	Table   *Table `json:"-"`

	Orders []Order `json:"-"`
}
