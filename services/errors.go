package services

import "fmt"

// Error types ของ business layer — controller ใช้ errors.As เลือก status code
// จะได้ไม่ต้องเทียบ string ของ error message

// ValidationError = คำขอผิดรูป/ขาด field ที่จำเป็น (ฝั่ง client แก้เองได้)
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidTableError = table id เป็นค่า placeholder/sentinel ที่ frontend ลืมแทนค่า
type InvalidTableError struct {
	TableID string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid table id %q", e.TableID)
}

// NotFoundError = หา resource ไม่เจอ (table/order/item/product)
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ProductUnavailableError = เมนูหมด/ปิดขาย สั่งไม่ได้
type ProductUnavailableError struct {
	ProductID uint
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is not available", e.Name)
	}
	return fmt.Sprintf("product %d is not available", e.ProductID)
}

// InvalidTransitionError = ขยับสถานะผิดลำดับ state machine
type InvalidTransitionError struct {
	Entity string // "order" | "item"
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move %s from %s to %s: %s", e.Entity, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot move %s from %s to %s", e.Entity, e.From, e.To)
}

// TransactionError = DB พัง/transaction ล่ม — ไม่ใช่ความผิด client
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
