package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// server จริงผ่าน httptest — ทดสอบ control protocol ตั้งแต่ upgrade ยัน join/leave
func newWSServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", h.HandleWebSocket(testSecret))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialWS(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func sendControl(t *testing.T, conn *websocket.Conn, action, kind string, id uint) {
	t.Helper()
	msg := controlMsg{Action: action, Type: kind, ID: id}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
}

func TestControlJoinAck(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	sendControl(t, conn, "join", "table", 17)

	env := readEnvelope(t, conn)
	assert.Equal(t, EventRoomJoin, env.Event)
	assert.Equal(t, "table:17", env.Room)
	assert.Len(t, h.MembersOf(TableRoom(17)), 1)
}

func TestControlLeaveAck(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	sendControl(t, conn, "join", "order", 5)
	readEnvelope(t, conn)

	sendControl(t, conn, "leave", "order", 5)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventRoomLeave, env.Event)
	assert.Equal(t, "order:5", env.Room)
	assert.Empty(t, h.MembersOf(OrderRoom(5)))
}

func TestControlMalformedMessage(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	env := readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Equal(t, "invalid message", env.Data.(map[string]any)["message"])

	// connection ต้องยังใช้ต่อได้หลัง message เสีย
	sendControl(t, conn, "join", "table", 17)
	assert.Equal(t, EventRoomJoin, readEnvelope(t, conn).Event)
}

func TestControlUnknownRoomRejected(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	sendControl(t, conn, "join", "galaxy", 1)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Contains(t, env.Data.(map[string]any)["message"], "unknown room type")

	sendControl(t, conn, "join", "table", 0)
	env = readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Contains(t, env.Data.(map[string]any)["message"], "room id is required")
}

func TestControlUnknownAction(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	sendControl(t, conn, "subscribe", "table", 17)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Equal(t, "unknown action", env.Data.(map[string]any)["message"])
}

func TestControlGuestKitchenRejected(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "")

	sendControl(t, conn, "join", "kitchen", 1)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Contains(t, env.Data.(map[string]any)["message"], "staff token required")
	assert.Empty(t, h.MembersOf(KitchenRoom(1)))

	// branch dashboard ก็เป็นของพนักงานเหมือนกัน
	sendControl(t, conn, "join", "branch", 1)
	env = readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Empty(t, h.MembersOf(BranchRoom(1)))
}

func TestControlStaffJoinsKitchen(t *testing.T) {
	h := NewHub()
	go h.Run()
	srv := newWSServer(t, h)

	token, err := utils.GenerateToken(1, "kitchen", testSecret, time.Minute)
	require.NoError(t, err)
	conn := dialWS(t, srv, "?token="+token)

	sendControl(t, conn, "join", "kitchen", 1)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventRoomJoin, env.Event)
	assert.Equal(t, "kitchen:1", env.Room)

	// event ที่ยิงเข้าห้องต้องวิ่งมาถึง connection จริง
	h.PublishOrderCreated(&services.OrderSnapshot{ID: 5, BranchID: 1, TableID: 17})
	env = readEnvelope(t, conn)
	assert.Equal(t, EventOrderCreated, env.Event)
	assert.Equal(t, KitchenRoom(1), env.Room)
}

func TestControlBadTokenIsGuest(t *testing.T) {
	h := NewHub()
	srv := newWSServer(t, h)
	conn := dialWS(t, srv, "?token=not-a-jwt")

	sendControl(t, conn, "join", "kitchen", 1)
	env := readEnvelope(t, conn)
	assert.Equal(t, EventError, env.Event)

	// ห้องลูกค้ายัง join ได้ตามปกติ
	sendControl(t, conn, "join", "table", 17)
	assert.Equal(t, EventRoomJoin, readEnvelope(t, conn).Event)
}
