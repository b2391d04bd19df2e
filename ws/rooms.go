package ws

import (
	"fmt"
)

// ชนิดของห้องที่ client join ได้ — ชื่อห้องเป็น string key ตาม convention เดิม
// viewer ฝั่งหน้าบ้านผูกกับ pattern พวกนี้อยู่ ห้ามเปลี่ยน format
const (
	RoomKitchen = "kitchen" // จอครัวของสาขา
	RoomBranch  = "branch"  // dashboard ผู้จัดการ
	RoomTable   = "table"   // order tracker ของโต๊ะ
	RoomOrder   = "order"   // หน้า detail ออเดอร์เดียว
)

func KitchenRoom(branchID uint) string { return fmt.Sprintf("kitchen:%d", branchID) }
func BranchRoom(branchID uint) string  { return fmt.Sprintf("branch:%d", branchID) }
func TableRoom(tableID uint) string    { return fmt.Sprintf("table:%d", tableID) }
func OrderRoom(orderID uint) string    { return fmt.Sprintf("order:%d", orderID) }

// ResolveRoom แปลง {type, id} จาก client เป็นชื่อห้อง
// type แปลก ๆ หรือ id ว่าง → error กลับไปหา client ไม่เงียบทิ้ง
func ResolveRoom(kind string, id uint) (string, error) {
	if id == 0 {
		return "", fmt.Errorf("room id is required")
	}
	switch kind {
	case RoomKitchen:
		return KitchenRoom(id), nil
	case RoomBranch:
		return BranchRoom(id), nil
	case RoomTable:
		return TableRoom(id), nil
	case RoomOrder:
		return OrderRoom(id), nil
	default:
		return "", fmt.Errorf("unknown room type %q", kind)
	}
}

// kitchen/branch feed มีข้อมูลทั้งสาขา ให้เฉพาะพนักงาน
func staffOnlyRoom(kind string) bool {
	return kind == RoomKitchen || kind == RoomBranch
}

func isStaffRole(role string) bool {
	switch role {
	case "kitchen", "manager", "admin":
		return true
	}
	return false
}
