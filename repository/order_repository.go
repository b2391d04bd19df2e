package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// POST /orders → สร้าง order (เรียกใน tx เสมอ)
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /orders/:id → order พร้อม items สำหรับ snapshot
func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /tables/:id/orders → ออเดอร์ที่ยัง active ของโต๊ะ
func (r *OrderRepository) ListActiveForTable(tableID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Items").
		Where("table_id = ? AND status NOT IN ?", tableID,
			[]string{entity.OrderCompleted, entity.OrderCancelled}).
		Order("id").Find(&orders).Error
	return orders, err
}

// GET /kitchen/orders?branchId= → คิวครัว (ออเดอร์ active ทั้งสาขา)
func (r *OrderRepository) ListActiveForBranch(branchID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Items").
		Where("branch_id = ? AND status NOT IN ?", branchID,
			[]string{entity.OrderCompleted, entity.OrderCancelled}).
		Order("id").Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard อัปเดตสถานะแบบมี guard — WHERE บังคับสถานะเดิม
// affected == 0 แปลว่ามีใครแย่งเปลี่ยนไปก่อนแล้ว
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from string, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// CountActiveForTable นับออเดอร์ active อื่น ๆ บนโต๊ะ (ใช้ตัดสินใจปล่อยโต๊ะ)
func (r *OrderRepository) CountActiveForTable(tx *gorm.DB, tableID, excludeOrderID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Order{}).
		Where("table_id = ? AND id <> ? AND status NOT IN ?", tableID, excludeOrderID,
			[]string{entity.OrderCompleted, entity.OrderCancelled}).
		Count(&cnt).Error
	return cnt, err
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetItemForOrder ดึง item เฉพาะที่อยู่ใน order นั้นจริง ๆ
func (r *OrderRepository) GetItemForOrder(orderID, itemID uint) (*entity.OrderItem, error) {
	var it entity.OrderItem
	if err := r.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderRepository) UpdateItemStatusGuard(tx *gorm.DB, itemID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.OrderItem{}).
		Where("id = ? AND status = ?", itemID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// CountUnfinishedItems = จำนวน item ที่ยังไม่ ready/served
// order จะ ready ได้ต่อเมื่อค่านี้เป็น 0 (derive จาก items ไม่เก็บแยก)
func (r *OrderRepository) CountUnfinishedItems(orderID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.OrderItem{}).
		Where("order_id = ? AND status NOT IN ?", orderID,
			[]string{entity.ItemReady, entity.ItemServed}).
		Count(&cnt).Error
	return cnt, err
}

// ---------------- Dashboard ----------------

// GET /branches/:id/dashboard → นับออเดอร์วันนี้แยกตามสถานะ + ยอดขาย
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// เที่ยงคืนตาม timezone ของเครื่อง ไม่ใช่ UTC
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (r *OrderRepository) CountTodayByStatus(branchID uint) ([]StatusCount, error) {
	start := startOfToday()
	var rows []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Where("branch_id = ? AND created_at >= ?", branchID, start).
		Group("status").Scan(&rows).Error
	return rows, err
}

func (r *OrderRepository) RevenueToday(branchID uint) (int64, error) {
	start := startOfToday()
	var row struct{ Revenue int64 }
	err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("branch_id = ? AND status = ? AND created_at >= ?",
			branchID, entity.OrderCompleted, start).
		Scan(&row).Error
	return row.Revenue, err
}
