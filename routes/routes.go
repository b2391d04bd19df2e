package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub, cache *services.CacheService) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	branchRepo := repository.NewBranchRepository(db)

	// Services — hub/cache ฉีดเข้าไปตรง ๆ ไม่มี global
	orderSvc := services.NewOrderService(db, orderRepo, tableRepo, menuRepo, hub, cache)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	orderCtrl := controllers.NewOrderController(orderSvc)
	kitchenCtrl := controllers.NewKitchenController(orderSvc)
	menuCtrl := controllers.NewMenuController(menuRepo, cache)
	tableCtrl := controllers.NewTableController(tableRepo, orderRepo)
	branchCtrl := controllers.NewBranchController(branchRepo, orderRepo)
	authCtrl := controllers.NewAuthController(authSvc)

	// Auth (staff)
	r.POST("/auth/login", authCtrl.Login)

	// Public — ลูกค้าที่โต๊ะใช้โดยไม่ต้องล็อกอิน
	r.GET("/menus", menuCtrl.List)
	r.GET("/branches", branchCtrl.List)
	r.GET("/branches/:id/tables", tableCtrl.ListForBranch)
	r.POST("/orders", orderCtrl.Create)
	r.GET("/orders/:id", orderCtrl.Detail)
	r.GET("/tables/:id/orders", orderCtrl.ListForTable)

	// WebSocket — token เป็น optional; ห้อง kitchen/branch เช็ค role ตอน join
	r.GET("/ws", hub.HandleWebSocket(cfg.JWTSecret))

	// Staff (kitchen/manager/admin)
	staff := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "kitchen", "manager", "admin"))
	{
		staff.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		staff.PATCH("/orders/:id/items/:itemId/status", orderCtrl.UpdateItemStatus)
		staff.GET("/kitchen/orders", kitchenCtrl.Queue)
		staff.PATCH("/tables/:id/status", tableCtrl.UpdateStatus)
	}

	// Manager/Admin
	mgr := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "manager", "admin"))
	{
		mgr.POST("/menus", menuCtrl.Create)
		mgr.PATCH("/menus/:id", menuCtrl.Update)
		mgr.GET("/branches/:id/dashboard", branchCtrl.Dashboard)
	}
}
