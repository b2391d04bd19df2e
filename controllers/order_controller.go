package controllers

import (
	"errors"
	"log"
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

// POST /orders → ลูกค้าสั่งอาหารจากโต๊ะ
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	snap, err := oc.Svc.Create(&req)
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	resp.Created(c, snap)
}

// GET /orders/:id → snapshot เต็ม (ใช้ reconcile หลัง ws หลุดด้วย)
func (oc *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	snap, err := oc.Svc.GetSnapshot(uint(id))
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	resp.OK(c, snap)
}

// GET /tables/:id/orders → ออเดอร์ active ของโต๊ะ
func (oc *OrderController) ListForTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	items, err := oc.Svc.ListForTable(uint(id))
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /orders/:id/status → พนักงานขยับสถานะออเดอร์
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := oc.Svc.UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	log.Printf("order %d -> %s by staff %d", o.ID, o.Status, utils.CurrentUserID(c))
	resp.OK(c, o)
}

// PATCH /orders/:id/items/:itemId/status → ครัวขยับสถานะรายจาน
func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	it, err := oc.Svc.UpdateItemStatus(uint(orderID), uint(itemID), req.Status)
	if err != nil {
		writeOrderErr(c, err)
		return
	}
	log.Printf("order %d item %d -> %s by staff %d", it.OrderID, it.ID, it.Status, utils.CurrentUserID(c))
	resp.OK(c, it)
}

// map error taxonomy ของ service → HTTP status
func writeOrderErr(c *gin.Context, err error) {
	var (
		vErr  *services.ValidationError
		tblE  *services.InvalidTableError
		nfE   *services.NotFoundError
		puE   *services.ProductUnavailableError
		trE   *services.InvalidTransitionError
		txErr *services.TransactionError
	)
	switch {
	case errors.As(err, &vErr), errors.As(err, &tblE), errors.As(err, &puE):
		resp.BadRequest(c, err.Error())
	case errors.As(err, &nfE):
		resp.NotFound(c, err.Error())
	case errors.As(err, &trE):
		resp.Conflict(c, err.Error())
	case errors.As(err, &txErr):
		resp.ServerError(c, err)
	default:
		resp.ServerError(c, err)
	}
}
