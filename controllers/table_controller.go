package controllers

import (
	"errors"
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TableController struct {
	Repo   *repository.TableRepository
	Orders *repository.OrderRepository
}

func NewTableController(repo *repository.TableRepository, orders *repository.OrderRepository) *TableController {
	return &TableController{Repo: repo, Orders: orders}
}

// GET /branches/:id/tables → โต๊ะทั้งสาขาพร้อมสถานะ
func (tc *TableController) ListForBranch(c *gin.Context) {
	branchID, _ := strconv.Atoi(c.Param("id"))
	tables, err := tc.Repo.ListByBranch(uint(branchID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": tables})
}

type updateTableReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /tables/:id/status (staff) — จอง/ทำความสะอาดเท่านั้น
// occupied/available ของจริงเป็นของ order path ห้าม set มือ
func (tc *TableController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req updateTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	switch req.Status {
	case entity.TableReserved, entity.TableCleaning, entity.TableAvailable:
	default:
		resp.BadRequest(c, "status must be reserved, cleaning or available")
		return
	}

	t, err := tc.Repo.GetTable(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "table not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	// ห้ามปล่อยโต๊ะมือถ้ายังมีออเดอร์ active ค้างอยู่
	if req.Status == entity.TableAvailable {
		active, err := tc.Orders.CountActiveForTable(tc.Repo.DB, t.ID, 0)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		if active > 0 {
			resp.Conflict(c, "table still has active orders")
			return
		}
	}

	if err := tc.Repo.SetStatus(tc.Repo.DB, t.ID, req.Status); err != nil {
		resp.ServerError(c, err)
		return
	}
	t.Status = req.Status
	resp.OK(c, t)
}
