package ws

import (
	"encoding/json"
	"testing"
	"time"

	"backend/entity"
	"backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client ปลอม — ไม่มี conn จริง อ่าน payload จาก send queue ตรง ๆ
func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 16)}
}

func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ws message")
		return Envelope{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoinIdempotent(t *testing.T) {
	h := NewHub()
	c := newTestClient(h)

	h.Join(c, KitchenRoom(1))
	h.Join(c, KitchenRoom(1))

	assert.Len(t, h.MembersOf(KitchenRoom(1)), 1)
	assert.Equal(t, []string{KitchenRoom(1)}, h.RoomsOf(c))
}

func TestLeaveRoom(t *testing.T) {
	h := NewHub()
	c := newTestClient(h)

	h.Join(c, TableRoom(17))
	h.Leave(c, TableRoom(17))

	assert.Empty(t, h.MembersOf(TableRoom(17)))
	assert.Empty(t, h.RoomsOf(c))
}

func TestDisconnectRemovesAllRooms(t *testing.T) {
	h := NewHub()
	c := newTestClient(h)

	h.Join(c, KitchenRoom(1))
	h.Join(c, BranchRoom(1))
	h.Join(c, TableRoom(17))

	h.Disconnect(c)

	assert.Empty(t, h.MembersOf(KitchenRoom(1)))
	assert.Empty(t, h.MembersOf(BranchRoom(1)))
	assert.Empty(t, h.MembersOf(TableRoom(17)))
	assert.Empty(t, h.RoomsOf(c))

	// เรียกซ้ำต้องไม่ panic
	h.Disconnect(c)
}

func TestOrderCreatedFanout(t *testing.T) {
	h := NewHub()
	go h.Run()

	kitchen1 := newTestClient(h)
	branch1 := newTestClient(h)
	table17 := newTestClient(h)
	kitchen2 := newTestClient(h)

	h.Join(kitchen1, KitchenRoom(1))
	h.Join(branch1, BranchRoom(1))
	h.Join(table17, TableRoom(17))
	h.Join(kitchen2, KitchenRoom(2))

	h.PublishOrderCreated(&services.OrderSnapshot{ID: 5, BranchID: 1, TableID: 17})

	for _, c := range []*Client{kitchen1, branch1} {
		env := recvEnvelope(t, c)
		assert.Equal(t, EventOrderCreated, env.Event)
	}
	// ออเดอร์ใหม่ไม่ใช่เรื่องของห้องโต๊ะ และห้ามข้ามสาขา
	assertSilent(t, table17)
	assertSilent(t, kitchen2)
}

func TestStatusChangedFanout(t *testing.T) {
	h := NewHub()
	go h.Run()

	table17 := newTestClient(h)
	branch1 := newTestClient(h)
	kitchen1 := newTestClient(h)
	order5 := newTestClient(h)

	h.Join(table17, TableRoom(17))
	h.Join(branch1, BranchRoom(1))
	h.Join(kitchen1, KitchenRoom(1))
	h.Join(order5, OrderRoom(5))

	o := &entity.Order{TableID: 17, BranchID: 1, Status: entity.OrderConfirmed}
	o.ID = 5
	h.PublishOrderStatus(o)

	for _, c := range []*Client{table17, branch1, order5} {
		env := recvEnvelope(t, c)
		assert.Equal(t, EventOrderStatusChanged, env.Event)
		data := env.Data.(map[string]any)
		assert.Equal(t, entity.OrderConfirmed, data["status"])
	}
	// order-level change ไม่ยิงเข้าจอครัว
	assertSilent(t, kitchen1)
}

func TestItemStatusReachesKitchen(t *testing.T) {
	h := NewHub()
	go h.Run()

	kitchen1 := newTestClient(h)
	h.Join(kitchen1, KitchenRoom(1))

	o := &entity.Order{TableID: 17, BranchID: 1}
	o.ID = 5
	it := &entity.OrderItem{OrderID: 5, Status: entity.ItemReady}
	it.ID = 9
	h.PublishItemStatus(o, it)

	env := recvEnvelope(t, kitchen1)
	assert.Equal(t, EventItemStatusChanged, env.Event)
	data := env.Data.(map[string]any)
	assert.Equal(t, float64(9), data["itemId"])
	assert.Equal(t, entity.ItemReady, data["status"])
}

func TestEventsOrderedWithinRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(h)
	h.Join(c, TableRoom(17))

	o := &entity.Order{TableID: 17, BranchID: 1}
	o.ID = 5

	o.Status = entity.OrderConfirmed
	h.PublishOrderStatus(o)
	o.Status = entity.OrderPreparing
	h.PublishOrderStatus(o)

	first := recvEnvelope(t, c)
	second := recvEnvelope(t, c)
	assert.Equal(t, entity.OrderConfirmed, first.Data.(map[string]any)["status"])
	assert.Equal(t, entity.OrderPreparing, second.Data.(map[string]any)["status"])
}

func TestPublishOnlyTargetRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	inside := newTestClient(h)
	outside := newTestClient(h)
	h.Join(inside, BranchRoom(1))
	h.Join(outside, BranchRoom(2))

	h.Publish("order.created", BranchRoom(1), map[string]any{"id": 1})

	env := recvEnvelope(t, inside)
	assert.Equal(t, BranchRoom(1), env.Room)
	assertSilent(t, outside)
}

func TestResolveRoom(t *testing.T) {
	room, err := ResolveRoom("kitchen", 1)
	require.NoError(t, err)
	assert.Equal(t, "kitchen:1", room)

	room, err = ResolveRoom("table", 17)
	require.NoError(t, err)
	assert.Equal(t, "table:17", room)

	_, err = ResolveRoom("galaxy", 1)
	assert.Error(t, err)

	_, err = ResolveRoom("table", 0)
	assert.Error(t, err)
}
