package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend/entity"
	"backend/services"
)

// ชื่อ event บน wire
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventItemStatusChanged  = "item.status_changed"
	EventRoomJoin           = "room.join"
	EventRoomLeave          = "room.leave"
	EventError              = "error"
)

// Envelope = กรอบของทุก message ที่ส่งออกไปหา client
type Envelope struct {
	Event string `json:"event"`
	Room  string `json:"room,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type outbound struct {
	room    string
	payload []byte
}

// Hub คือศูนย์กลาง fan-out: ใครอยู่ห้องไหน + ส่ง event เข้าห้อง
// ส่งเป็น instance ให้ service ผ่าน constructor ไม่ใช่ global
type Hub struct {
	mu      sync.Mutex
	rooms   map[string]map[*Client]bool // room -> set of clients
	members map[*Client]map[string]bool // client -> set of rooms (ไว้เคลียร์ตอนหลุด)

	// buffered — Publish ไม่รอใคร, ล้นก็ทิ้ง (at-most-once)
	broadcast chan outbound
}

func NewHub() *Hub {
	return &Hub{
		rooms:     make(map[string]map[*Client]bool),
		members:   make(map[*Client]map[string]bool),
		broadcast: make(chan outbound, 256),
	}
}

// Run คอยเท broadcast เข้า send queue ของแต่ละ client ในห้อง
// goroutine เดียว → ลำดับ event ในห้องเดียวกันไม่สลับ
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for c := range h.rooms[msg.room] {
			select {
			case c.send <- msg.payload:
			default:
				// client เขียนไม่ทัน — ทิ้ง message นี้ของเขาไป
				log.Printf("ws: drop message for slow client in %s", msg.room)
			}
		}
		h.mu.Unlock()
	}
}

// Join เอา client เข้าห้อง — join ซ้ำห้องเดิมไม่มีผลอะไรเพิ่ม
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	if h.members[c] == nil {
		h.members[c] = make(map[string]bool)
	}
	h.members[c][room] = true
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

// Disconnect ถอด client ออกจากทุกห้องทีเดียว แล้วปิด send queue
// reconnect กลับมาต้อง join ใหม่เองหมด ไม่มี session ค้าง
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[c]; !ok {
		if !c.closed {
			c.closed = true
			close(c.send)
		}
		return
	}
	for room := range h.members[c] {
		h.leaveLocked(c, room)
	}
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if set, ok := h.rooms[room]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, room)
		}
	}
	if set, ok := h.members[c]; ok {
		delete(set, room)
		if len(set) == 0 {
			delete(h.members, c)
		}
	}
}

// MembersOf = ใครอยู่ในห้องบ้าง
func (h *Hub) MembersOf(room string) []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		out = append(out, c)
	}
	return out
}

// RoomsOf = client นี้อยู่ห้องไหนบ้าง
func (h *Hub) RoomsOf(c *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.members[c]))
	for room := range h.members[c] {
		out = append(out, room)
	}
	return out
}

// Publish ยิง event เข้าห้องแบบไม่ block ผู้เรียก
// ไม่มีการ broadcast หาทุก connection — ยิงเข้าห้องที่ระบุเท่านั้น
func (h *Hub) Publish(event, room string, data any) {
	payload, err := json.Marshal(Envelope{Event: event, Room: room, Data: data})
	if err != nil {
		log.Printf("ws: marshal %s: %v", event, err)
		return
	}
	select {
	case h.broadcast <- outbound{room: room, payload: payload}:
	default:
		log.Printf("ws: broadcast queue full, drop %s for %s", event, room)
	}
}

// ---------------- Order events ----------------

type orderStatusPayload struct {
	OrderID   uint      `json:"orderId"`
	OrderNo   string    `json:"orderNo"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type itemStatusPayload struct {
	OrderID   uint      `json:"orderId"`
	ItemID    uint      `json:"itemId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishOrderCreated → จอครัว + dashboard ของสาขา เท่านั้น
func (h *Hub) PublishOrderCreated(snap *services.OrderSnapshot) {
	h.Publish(EventOrderCreated, KitchenRoom(snap.BranchID), snap)
	h.Publish(EventOrderCreated, BranchRoom(snap.BranchID), snap)
}

// PublishOrderStatus → ห้องของออเดอร์ + โต๊ะ + สาขา
func (h *Hub) PublishOrderStatus(o *entity.Order) {
	data := orderStatusPayload{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		Status:    o.Status,
		Timestamp: time.Now(),
	}
	h.Publish(EventOrderStatusChanged, OrderRoom(o.ID), data)
	h.Publish(EventOrderStatusChanged, TableRoom(o.TableID), data)
	h.Publish(EventOrderStatusChanged, BranchRoom(o.BranchID), data)
}

// PublishItemStatus → เหมือนข้างบน + จอครัวด้วย (รายจานเป็นเรื่องของครัว)
func (h *Hub) PublishItemStatus(o *entity.Order, it *entity.OrderItem) {
	data := itemStatusPayload{
		OrderID:   o.ID,
		ItemID:    it.ID,
		Status:    it.Status,
		Timestamp: time.Now(),
	}
	h.Publish(EventItemStatusChanged, OrderRoom(o.ID), data)
	h.Publish(EventItemStatusChanged, TableRoom(o.TableID), data)
	h.Publish(EventItemStatusChanged, BranchRoom(o.BranchID), data)
	h.Publish(EventItemStatusChanged, KitchenRoom(o.BranchID), data)
}
