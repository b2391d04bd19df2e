package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct {
	Repo  *repository.MenuRepository
	Cache *services.CacheService
}

func NewMenuController(repo *repository.MenuRepository, cache *services.CacheService) *MenuController {
	return &MenuController{Repo: repo, Cache: cache}
}

const menuCacheTTL = 5 * time.Minute

func menuCacheKey(branchID uint) string {
	return fmt.Sprintf("menus:branch:%d", branchID)
}

// GET /menus?branchId= → เมนูทั้งสาขา (ผ่าน cache)
func (mc *MenuController) List(c *gin.Context) {
	branchID, _ := strconv.Atoi(c.Query("branchId"))
	if branchID <= 0 {
		resp.BadRequest(c, "branchId is required")
		return
	}

	key := menuCacheKey(uint(branchID))
	var cached []entity.Menu
	if mc.Cache.GetJSON(key, &cached) {
		resp.OK(c, gin.H{"items": cached})
		return
	}

	menus, err := mc.Repo.ListByBranch(uint(branchID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	mc.Cache.SetJSON(key, menus, menuCacheTTL)
	resp.OK(c, gin.H{"items": menus})
}

type createMenuReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=0"`
	ImageURL    string `json:"imageUrl"`
	CategoryID  uint   `json:"categoryId"`
	BranchID    uint   `json:"branchId" binding:"required"`
}

// POST /menus (manager/admin)
func (mc *MenuController) Create(c *gin.Context) {
	var req createMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	m := entity.Menu{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   true,
		CategoryID:  req.CategoryID,
		BranchID:    req.BranchID,
	}
	if err := mc.Repo.Create(&m); err != nil {
		resp.ServerError(c, err)
		return
	}

	mc.Cache.Invalidate(menuCacheKey(m.BranchID))
	resp.Created(c, m)
}

type updateMenuReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	Available   *bool   `json:"available"`
}

// PATCH /menus/:id (manager/admin) — แก้ราคา/ปิดขาย แล้วเคลียร์ cache
func (mc *MenuController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	m, err := mc.Repo.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var req updateMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.Available != nil {
		fields["available"] = *req.Available
	}
	if len(fields) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	if err := mc.Repo.Update(m, fields); err != nil {
		resp.ServerError(c, err)
		return
	}

	mc.Cache.Invalidate(menuCacheKey(m.BranchID))
	resp.OK(c, m)
}
