package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type BranchRepository struct {
	DB *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{DB: db}
}

func (r *BranchRepository) List() ([]entity.Branch, error) {
	var branches []entity.Branch
	err := r.DB.Order("id").Find(&branches).Error
	return branches, err
}

func (r *BranchRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Branch{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
