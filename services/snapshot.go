package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// OrderSnapshot = ออเดอร์แบบ denormalize ครบ ส่งให้ viewer ได้เลย
// โดยไม่ต้องยิง read ตามอีกรอบ
type OrderSnapshot struct {
	ID            uint           `json:"id"`
	OrderNo       string         `json:"orderNo"`
	TableID       uint           `json:"tableId"`
	TableNumber   int            `json:"tableNumber"`
	BranchID      uint           `json:"branchId"`
	CustomerID    *uint          `json:"customerId,omitempty"`
	Items         []SnapshotItem `json:"items"`
	Subtotal      int64          `json:"subtotal"`
	Discount      int64          `json:"discount"`
	Tax           int64          `json:"tax"`
	Total         int64          `json:"total"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type SnapshotItem struct {
	ID          uint   `json:"id"`
	MenuID      uint   `json:"menuId"`
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
}

// ---------------- Collaborator contracts ----------------

// Catalog = ตัวค้นเมนู (ชื่อ/ราคา/ขายอยู่ไหม) — ห้ามเชื่อราคาจาก client
type Catalog interface {
	GetProduct(id uint) (repository.ProductInfo, error)
}

// PromotionSource คิดส่วนลดให้ออเดอร์ ถ้าไม่มีก็ 0
type PromotionSource interface {
	DiscountFor(branchID uint, subtotal int64) int64
}

// EventPublisher = ปลายทางของ event หลัง commit (ws hub)
// ทุกเมธอดต้องไม่ block ผู้เรียก
type EventPublisher interface {
	PublishOrderCreated(snap *OrderSnapshot)
	PublishOrderStatus(o *entity.Order)
	PublishItemStatus(o *entity.Order, it *entity.OrderItem)
}

// Invalidator = แจ้ง cache layer หลัง mutation (best-effort)
type Invalidator interface {
	Invalidate(keys ...string)
}

func snapshotFromOrder(o *entity.Order, tableNumber int, items []entity.OrderItem) *OrderSnapshot {
	snap := &OrderSnapshot{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		TableID:       o.TableID,
		TableNumber:   tableNumber,
		BranchID:      o.BranchID,
		CustomerID:    o.CustomerID,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		Items:         make([]SnapshotItem, 0, len(items)),
	}
	for _, it := range items {
		snap.Items = append(snap.Items, SnapshotItem{
			ID:          it.ID,
			MenuID:      it.MenuID,
			ProductName: it.ProductName,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Status:      it.Status,
			Note:        it.Note,
		})
	}
	return snap
}

// แปลง error จาก gorm → taxonomy กลางของ service
func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return &TransactionError{Op: "lookup " + resource, Err: err}
}
