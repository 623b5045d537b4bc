package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qrdine/qr-menu/config"
	"github.com/qrdine/qr-menu/controllers"
	"github.com/qrdine/qr-menu/middlewares"
)

func SetupRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, cfg.TaxRate)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login/register are rate limited more strictly than the rest.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      GUEST ROUTES (no auth)
	// ----------------------------------------------------------------

	// QR scan entry point: identifier is a table number or a QR slug.
	// Creation lives on the same path but is admin-only.
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:identifier", tableCtrl.ResolveTable)
	r.POST("/tables", middlewares.AuthMiddleware(), middlewares.RequireRoles("admin"), tableCtrl.CreateTable)

	// Menu browsing
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)

	// Order placement and tracking. The order id is the read capability;
	// the guest tracking page polls GET /orders/:order_id.
	r.POST("/orders/:table_param/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES (JWT)
	// ----------------------------------------------------------------
	staff := r.Group("/")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("staff"))
	{
		// Status board listing + transitions
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("admin"))
	{
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	}

	return r
}
