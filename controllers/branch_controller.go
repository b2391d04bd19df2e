package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/repository"

	"github.com/gin-gonic/gin"
)

type BranchController struct {
	Repo   *repository.BranchRepository
	Orders *repository.OrderRepository
}

func NewBranchController(repo *repository.BranchRepository, orders *repository.OrderRepository) *BranchController {
	return &BranchController{Repo: repo, Orders: orders}
}

// GET /branches
func (bc *BranchController) List(c *gin.Context) {
	branches, err := bc.Repo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": branches})
}

// GET /branches/:id/dashboard (manager/admin)
// นับออเดอร์วันนี้แยกสถานะ + ยอดขายจากออเดอร์ที่ปิดบิลแล้ว
func (bc *BranchController) Dashboard(c *gin.Context) {
	branchID, _ := strconv.Atoi(c.Param("id"))

	ok, err := bc.Repo.Exists(uint(branchID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if !ok {
		resp.NotFound(c, "branch not found")
		return
	}

	counts, err := bc.Orders.CountTodayByStatus(uint(branchID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	revenue, err := bc.Orders.RevenueToday(uint(branchID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"ordersByStatus": counts,
		"revenueToday":   revenue,
	})
}
