// services/order_transitions.go
package services

import (
	"fmt"
	"strconv"
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

// เดินหน้าทีละ step เท่านั้น (ข้าม step ไม่ได้) + cancelled หลุดได้จากทุกสถานะที่ยังไม่จบ
var orderNext = map[string]string{
	entity.OrderPending:   entity.OrderConfirmed,
	entity.OrderConfirmed: entity.OrderPreparing,
	entity.OrderPreparing: entity.OrderReady,
	entity.OrderReady:     entity.OrderServed,
	entity.OrderServed:    entity.OrderCompleted,
}

// item ก็เดินหน้าทีละ step เหมือนกัน — pending ข้ามไป ready เลยไม่ได้
// ครัวต้องกด preparing ก่อนเสมอ
var itemNext = map[string]string{
	entity.ItemPending:   entity.ItemPreparing,
	entity.ItemPreparing: entity.ItemReady,
	entity.ItemReady:     entity.ItemServed,
}

var knownOrderStatuses = map[string]struct{}{
	entity.OrderPending: {}, entity.OrderConfirmed: {}, entity.OrderPreparing: {},
	entity.OrderReady: {}, entity.OrderServed: {}, entity.OrderCompleted: {},
	entity.OrderCancelled: {},
}

var knownItemStatuses = map[string]struct{}{
	entity.ItemPending: {}, entity.ItemPreparing: {},
	entity.ItemReady: {}, entity.ItemServed: {},
}

// UpdateOrderStatus = พนักงานขยับสถานะออเดอร์
// ทุก transition: เขียน DB ก่อน แล้วค่อย publish ไป table/branch room
func (s *OrderService) UpdateOrderStatus(orderID uint, next string) (*entity.Order, error) {
	if _, ok := knownOrderStatuses[next]; !ok {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown order status %q", next)}
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, notFoundOr(err, "order", strconv.FormatUint(uint64(orderID), 10))
	}

	if !orderMoveLegal(o.Status, next) {
		return nil, &InvalidTransitionError{Entity: "order", From: o.Status, To: next}
	}

	// order จะ ready ได้ต่อเมื่อทุก item ready/served แล้ว (derive จาก items)
	if next == entity.OrderReady {
		unfinished, err := s.Repo.CountUnfinishedItems(o.ID)
		if err != nil {
			return nil, &TransactionError{Op: "check items", Err: err}
		}
		if unfinished > 0 {
			return nil, &InvalidTransitionError{
				Entity: "order", From: o.Status, To: next,
				Reason: fmt.Sprintf("%d item(s) not ready yet", unfinished),
			}
		}
	}

	now := time.Now()
	updates := map[string]any{"status": next}
	switch next {
	case entity.OrderCompleted:
		updates["completed_at"] = &now
	case entity.OrderCancelled:
		updates["cancelled_at"] = &now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			// มีคนแย่งเปลี่ยนไปก่อนใน tx อื่น
			return &InvalidTransitionError{Entity: "order", From: o.Status, To: next, Reason: "conflict"}
		}

		// ปิดบิล/ยกเลิก → ปล่อยโต๊ะ ถ้าไม่มีออเดอร์ active อื่นค้างอยู่
		if entity.IsOrderTerminal(next) {
			active, err := s.Repo.CountActiveForTable(tx, o.TableID, o.ID)
			if err != nil {
				return err
			}
			if active == 0 {
				if _, err := s.Tables.SetStatusGuard(tx, o.TableID, entity.TableOccupied, entity.TableAvailable); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*InvalidTransitionError); ok {
			return nil, err
		}
		return nil, &TransactionError{Op: "update order status", Err: err}
	}

	o.Status = next
	switch next {
	case entity.OrderCompleted:
		o.CompletedAt = &now
	case entity.OrderCancelled:
		o.CancelledAt = &now
	}

	if s.Hub != nil {
		s.Hub.PublishOrderStatus(o)
	}
	s.invalidate(
		fmt.Sprintf("order:%d", o.ID),
		fmt.Sprintf("table:%d:orders", o.TableID),
		fmt.Sprintf("branch:%d:orders", o.BranchID),
	)

	return o, nil
}

// UpdateItemStatus = ครัวขยับสถานะรายจาน
// item ต้องอยู่ใน order นั้นจริง ไม่งั้น NotFound
func (s *OrderService) UpdateItemStatus(orderID, itemID uint, next string) (*entity.OrderItem, error) {
	if _, ok := knownItemStatuses[next]; !ok {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown item status %q", next)}
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, notFoundOr(err, "order", strconv.FormatUint(uint64(orderID), 10))
	}
	if entity.IsOrderTerminal(o.Status) {
		return nil, &InvalidTransitionError{Entity: "item", From: o.Status, To: next, Reason: "order already closed"}
	}

	it, err := s.Repo.GetItemForOrder(orderID, itemID)
	if err != nil {
		return nil, notFoundOr(err, "order item", strconv.FormatUint(uint64(itemID), 10))
	}

	if itemNext[it.Status] != next {
		return nil, &InvalidTransitionError{Entity: "item", From: it.Status, To: next}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateItemStatusGuard(tx, it.ID, it.Status, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &InvalidTransitionError{Entity: "item", From: it.Status, To: next, Reason: "conflict"}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*InvalidTransitionError); ok {
			return nil, err
		}
		return nil, &TransactionError{Op: "update item status", Err: err}
	}

	it.Status = next
	if s.Hub != nil {
		s.Hub.PublishItemStatus(o, it)
	}
	s.invalidate(fmt.Sprintf("order:%d", o.ID))

	return it, nil
}

func orderMoveLegal(from, to string) bool {
	if entity.IsOrderTerminal(from) {
		return false
	}
	if to == entity.OrderCancelled {
		return true
	}
	return orderNext[from] == to
}
