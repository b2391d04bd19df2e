package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ProductInfo = ข้อมูลเมนูเท่าที่ order path ต้องใช้
type ProductInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

// GetProduct ดึงชื่อ/ราคา/สถานะขาย ของเมนูตาม id
func (r *MenuRepository) GetProduct(id uint) (ProductInfo, error) {
	var m entity.Menu
	if err := r.DB.Select("id, name, price, available").First(&m, id).Error; err != nil {
		return ProductInfo{}, err
	}
	return ProductInfo{ID: m.ID, Name: m.Name, Price: m.Price, Available: m.Available}, nil
}

// GET /menus?branchId= → เมนูทั้งสาขา
func (r *MenuRepository) ListByBranch(branchID uint) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.Where("branch_id = ?", branchID).Order("category_id, id").Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) Create(m *entity.Menu) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Get(id uint) (*entity.Menu, error) {
	var m entity.Menu
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Update(m *entity.Menu, fields map[string]any) error {
	return r.DB.Model(m).Updates(fields).Error
}
