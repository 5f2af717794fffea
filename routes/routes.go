package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services; the hub comes in as an injected capability
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo, restRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, menuRepo, restRepo, hub)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	provOrderCtrl := controllers.NewProviderOrderController(orderSvc)
	restCtrl := controllers.NewRestaurantController(restRepo, menuRepo)
	adminCtrl := controllers.NewAdminController(orderSvc, restRepo)
	wsHandler := ws.NewHandler(hub, restRepo)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Public browse
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)

	// Cart (customer)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items", cartCtrl.UpdateQty)
		cart.DELETE("/items/:menuItemId", cartCtrl.RemoveItem)
		cart.POST("/switch-restaurant", cartCtrl.SwitchRestaurant)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders (customer)
	orders := r.Group("/orders", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		orders.POST("", orderCtrl.Checkout)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id/cancel", orderCtrl.Cancel)
	}

	// Provider
	provider := r.Group("/provider", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleProvider))
	{
		provider.POST("/restaurant", restCtrl.Create)
		provider.GET("/restaurant", restCtrl.Mine)
		provider.PATCH("/restaurant", restCtrl.Update)
		provider.POST("/menu", restCtrl.CreateMenuItem)
		provider.GET("/menu", restCtrl.ListMenu)
		provider.PATCH("/menu/:id", restCtrl.UpdateMenuItem)
		provider.GET("/orders", provOrderCtrl.List)
		provider.PATCH("/orders/:id/status", provOrderCtrl.UpdateStatus)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/orders", adminCtrl.Orders)
		admin.GET("/orders/stats", adminCtrl.OrderStats)
		admin.GET("/restaurants", adminCtrl.Restaurants)
		admin.PATCH("/restaurants/:id/approve", adminCtrl.ApproveRestaurant)
	}

	// Real-time subscriptions
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), wsHandler.Serve)
}
