package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ภาษีคงที่ 10% ของ subtotal
const taxRatePercent = 10

// กัน transaction ค้างยาว — เกินนี้ rollback แล้วโต๊ะไม่ถูกแตะ
const orderTxTimeout = 5 * time.Second

// ค่า table id ที่เจอบ่อยเวลา frontend ลืมแทนค่า template
var placeholderTableIDs = map[string]struct{}{
	"":             {},
	"0":            {},
	"undefined":    {},
	"null":         {},
	"NaN":          {},
	"{{TABLE_ID}}": {},
	"{TABLE_ID}":   {},
	"${tableId}":   {},
}

type OrderService struct {
	DB      *gorm.DB
	Repo    *repository.OrderRepository
	Tables  *repository.TableRepository
	Catalog Catalog

	Promos PromotionSource // optional
	Hub    EventPublisher  // optional (nil ตอน test)
	Cache  Invalidator     // optional
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tables *repository.TableRepository,
	catalog Catalog,
	hub EventPublisher,
	cache Invalidator,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, Tables: tables, Catalog: catalog, Hub: hub, Cache: cache}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuID uint   `json:"menuId"`
	Qty    int    `json:"qty"`
	Note   string `json:"note"`
}

type CreateOrderReq struct {
	TableID    string        `json:"tableId"`
	BranchID   uint          `json:"branchId"`
	CustomerID *uint         `json:"customerId"`
	Items      []OrderItemIn `json:"items"`
	Notes      string        `json:"notes"`
}

// Create = สั่งอาหาร: validate → คิดเงินจากราคาจริงใน catalog →
// เขียน order + items + occupy โต๊ะ ใน tx เดียว → publish snapshot หลัง commit
func (s *OrderService) Create(req *CreateOrderReq) (*OrderSnapshot, error) {
	tableID, err := s.resolveTableID(req.TableID)
	if err != nil {
		return nil, err
	}

	table, err := s.Tables.GetTable(tableID)
	if err != nil {
		return nil, notFoundOr(err, "table", req.TableID)
	}

	branchID := req.BranchID
	if branchID == 0 {
		branchID = table.BranchID
	}

	if len(req.Items) == 0 {
		return nil, &ValidationError{Msg: "items is required"}
	}

	// คิดราคาจาก catalog เท่านั้น ไม่รับราคาจาก client
	var subtotal int64
	rows := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Qty < 1 {
			return nil, &ValidationError{Msg: fmt.Sprintf("qty of menu %d must be at least 1", it.MenuID)}
		}
		p, err := s.Catalog.GetProduct(it.MenuID)
		if err != nil {
			return nil, notFoundOr(err, "product", strconv.FormatUint(uint64(it.MenuID), 10))
		}
		if !p.Available {
			return nil, &ProductUnavailableError{ProductID: p.ID, Name: p.Name}
		}
		sub := p.Price * int64(it.Qty)
		subtotal += sub
		rows = append(rows, entity.OrderItem{
			MenuID:      p.ID,
			ProductName: p.Name, // snapshot ชื่อ ณ ตอนสั่ง
			Qty:         it.Qty,
			UnitPrice:   p.Price,
			Subtotal:    sub,
			Status:      entity.ItemPending,
			Note:        it.Note,
		})
	}

	discount := int64(0)
	if s.Promos != nil {
		discount = s.Promos.DiscountFor(branchID, subtotal)
	}
	tax := subtotal * taxRatePercent / 100
	total := subtotal - discount + tax

	order := entity.Order{
		OrderNo:       newOrderNo(),
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         total,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPending,
		Notes:         req.Notes,
		TableID:       table.ID,
		BranchID:      branchID,
		CustomerID:    req.CustomerID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), orderTxTimeout)
	defer cancel()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for i := range rows {
			rows[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &rows[i]); err != nil {
				return err
			}
		}
		// โต๊ะถูกจองพร้อมออเดอร์ใน tx เดียวกัน — สองออเดอร์พร้อมกันก็ไม่หลุด
		return s.Tables.SetStatus(tx, table.ID, entity.TableOccupied)
	})
	if err != nil {
		return nil, &TransactionError{Op: "create order", Err: err}
	}

	snap := snapshotFromOrder(&order, table.Number, rows)

	// หลัง commit: ยิง event + เคลียร์ cache แบบ fire-and-forget
	// พังตรงนี้ออเดอร์ต้องไม่พังตาม
	if s.Hub != nil {
		s.Hub.PublishOrderCreated(snap)
	}
	s.invalidate(
		fmt.Sprintf("table:%d:orders", table.ID),
		fmt.Sprintf("branch:%d:orders", branchID),
	)

	return snap, nil
}

// GetSnapshot อ่านออเดอร์เต็ม ๆ สำหรับ GET /orders/:id
// client ที่หลุด ws แล้วต่อใหม่ ใช้ตัวนี้ reconcile
func (s *OrderService) GetSnapshot(orderID uint) (*OrderSnapshot, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if err != nil {
		return nil, notFoundOr(err, "order", strconv.FormatUint(uint64(orderID), 10))
	}
	table, err := s.Tables.GetTable(o.TableID)
	if err != nil {
		return nil, notFoundOr(err, "table", strconv.FormatUint(uint64(o.TableID), 10))
	}
	return snapshotFromOrder(o, table.Number, o.Items), nil
}

// ListForTable = ออเดอร์ active ของโต๊ะ (order tracker ฝั่งลูกค้า)
func (s *OrderService) ListForTable(tableID uint) ([]*OrderSnapshot, error) {
	table, err := s.Tables.GetTable(tableID)
	if err != nil {
		return nil, notFoundOr(err, "table", strconv.FormatUint(uint64(tableID), 10))
	}
	orders, err := s.Repo.ListActiveForTable(tableID)
	if err != nil {
		return nil, &TransactionError{Op: "list orders", Err: err}
	}
	out := make([]*OrderSnapshot, 0, len(orders))
	for i := range orders {
		out = append(out, snapshotFromOrder(&orders[i], table.Number, orders[i].Items))
	}
	return out, nil
}

// KitchenQueue = ออเดอร์ active ทั้งสาขา ให้จอครัว bootstrap ตอนเปิด/ต่อใหม่
func (s *OrderService) KitchenQueue(branchID uint) ([]*OrderSnapshot, error) {
	orders, err := s.Repo.ListActiveForBranch(branchID)
	if err != nil {
		return nil, &TransactionError{Op: "list kitchen queue", Err: err}
	}
	out := make([]*OrderSnapshot, 0, len(orders))
	for i := range orders {
		// จอครัวไม่ต้องใช้เลขโต๊ะจริงจัง ใช้ tableId พอ แต่เติมให้ถ้าหาเจอ
		number := 0
		if t, err := s.Tables.GetTable(orders[i].TableID); err == nil {
			number = t.Number
		}
		out = append(out, snapshotFromOrder(&orders[i], number, orders[i].Items))
	}
	return out, nil
}

func (s *OrderService) resolveTableID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if _, bad := placeholderTableIDs[trimmed]; bad {
		return 0, &InvalidTableError{TableID: raw}
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return 0, &InvalidTableError{TableID: raw}
	}
	return uint(id), nil
}

func (s *OrderService) invalidate(keys ...string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Invalidate(keys...)
}

// newOrderNo = เลขออเดอร์จาก timestamp + hex suffix จาก uuid
// timestamp เฉย ๆ ชนกันได้ถ้าสั่งพร้อมกันใน ms เดียว เลยต้องมี suffix
func newOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), suffix)
}
