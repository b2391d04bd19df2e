package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

const sendQueueSize = 64

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client = หนึ่ง websocket connection
// role มาจาก token (ถ้ามี) ใช้คุมการ join ห้องของพนักงาน
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	role   string
	closed bool // แตะภายใต้ hub.mu เท่านั้น
}

// control message จาก client: {"action":"join","type":"kitchen","id":1}
type controlMsg struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	ID     uint   `json:"id"`
}

// WS route: GET /ws?token=...  (token ไม่บังคับ — ลูกค้าเข้าห้อง table/order ได้เลย)
func (h *Hub) HandleWebSocket(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := roleFromRequest(c, jwtSecret)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:  h,
			conn: conn,
			send: make(chan []byte, sendQueueSize),
			role: role,
		}

		go client.writePump()
		go client.readPump()
	}
}

// อ่าน token จาก query ก่อน ไม่มีค่อยดู header — parse ไม่ผ่านก็เป็น guest
func roleFromRequest(c *gin.Context, secret string) string {
	var tokenStr string
	if t := c.Query("token"); t != "" {
		tokenStr = t
	} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tokenStr = strings.TrimPrefix(h, "Bearer ")
	}
	if tokenStr == "" {
		return ""
	}

	claims := &utils.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.Role
}

// readPump ฟัง control message (join/leave) จนกว่า connection จะหลุด
func (c *Client) readPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg controlMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}

		switch msg.Action {
		case "join":
			room, err := ResolveRoom(msg.Type, msg.ID)
			if err != nil {
				c.sendError(err.Error())
				continue
			}
			if staffOnlyRoom(msg.Type) && !isStaffRole(c.role) {
				c.sendError("staff token required for " + room)
				continue
			}
			c.hub.Join(c, room)
			c.enqueue(Envelope{Event: EventRoomJoin, Room: room})

		case "leave":
			room, err := ResolveRoom(msg.Type, msg.ID)
			if err != nil {
				c.sendError(err.Error())
				continue
			}
			c.hub.Leave(c, room)
			c.enqueue(Envelope{Event: EventRoomLeave, Room: room})

		default:
			c.sendError("unknown action")
		}
	}
}

// writePump เขียนจาก send queue ลง connection — คนเดียวที่แตะ conn ฝั่งเขียน
func (c *Client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}

func (c *Client) enqueue(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) sendError(msg string) {
	c.enqueue(Envelope{Event: EventError, Data: gin.H{"message": msg}})
}
