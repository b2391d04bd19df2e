package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) GetTable(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GET /branches/:id/tables → โต๊ะทั้งสาขาพร้อม occupancy
func (r *TableRepository) ListByBranch(branchID uint) ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("branch_id = ?", branchID).Order("number").Find(&tables).Error
	return tables, err
}

// SetStatus เปลี่ยนสถานะโต๊ะตรง ๆ (ใช้ใน tx ของ order path)
func (r *TableRepository) SetStatus(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&entity.Table{}).Where("id = ?", id).
		Update("status", status).Error
}

// SetStatusGuard เปลี่ยนสถานะเฉพาะตอนที่ค่าเดิมตรงตามคาด (กัน race)
func (r *TableRepository) SetStatusGuard(tx *gorm.DB, id uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Table{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
