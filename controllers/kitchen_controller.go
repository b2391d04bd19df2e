package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type KitchenController struct {
	Svc *services.OrderService
}

func NewKitchenController(svc *services.OrderService) *KitchenController {
	return &KitchenController{Svc: svc}
}

// GET /kitchen/orders?branchId= → คิวครัวทั้งสาขา
// จอครัวเรียกตอนเปิดจอ/ต่อ ws ใหม่ แล้วค่อยรับของสดจาก event
func (kc *KitchenController) Queue(c *gin.Context) {
	branchID, _ := strconv.Atoi(c.Query("branchId"))
	if branchID <= 0 {
		resp.BadRequest(c, "branchId is required")
		return
	}

	items, err := kc.Svc.KitchenQueue(uint(branchID))
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
