package utils

import "github.com/gin-gonic/gin"

// CurrentUserID ดึง userId ที่ middleware set ไว้ใน context
// คืน 0 ถ้าไม่มี (เช่น route ที่ไม่ผ่าน auth)
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get("userId")
	if !ok {
		return 0
	}
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	}
	return 0
}
