package router

import (
	"mess-booking/internal/cache"
	"mess-booking/internal/database"
	"mess-booking/internal/handler"
	"mess-booking/internal/handler/bills"
	"mess-booking/internal/handler/bookings"
	"mess-booking/internal/handler/menu"
	"mess-booking/internal/handler/users"
	"mess-booking/internal/metrics"
	"mess-booking/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Deps 是註冊路由所需的服務
type Deps struct {
	DB        database.DB
	Cache     cache.Cache
	Tokens    middleware.TokenVerifier
	Directory users.Directory
	Menu      menu.Menu
	Ledger    bookings.Ledger
	Billing   bills.Billing

	// 登入限流：每秒請求數與突發量
	LoginLimit float64
	LoginBurst int
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	auth := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireAdmin(d.Tokens)
	optional := middleware.OptionalAuth(d.Tokens)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 使用者
	api.POST("/users", users.RegisterHandler(d.Directory), optional)
	api.POST("/users/login", users.LoginHandler(d.Directory), middleware.LoginRateLimiter(d.LoginLimit, d.LoginBurst))
	api.GET("/users/profile", users.ProfileHandler(d.Directory), auth)
	api.PATCH("/users/profile/password", users.UpdateMyPasswordHandler(d.Directory), auth)
	api.GET("/users", users.ListUsersHandler(d.Directory), admin)
	api.GET("/users/:id", users.GetUserHandler(d.Directory), admin)
	api.POST("/users/:id/reset-password", users.ResetUserPasswordHandler(d.Directory), admin)

	// 菜單
	api.GET("/menu", menu.ListHandler(d.Menu))
	api.GET("/menu/today", menu.TodayHandler(d.Menu))
	api.GET("/menu/:day", menu.GetDayHandler(d.Menu))
	api.POST("/menu", menu.UpsertHandler(d.Menu), admin)
	api.DELETE("/menu/:day", menu.DeleteHandler(d.Menu), admin)

	// 訂餐
	api.POST("/bookings", bookings.UpsertHandler(d.Ledger), auth)
	api.GET("/bookings/user", bookings.MyBookingsHandler(d.Ledger), auth)
	api.GET("/bookings/user/today", bookings.MyTodayHandler(d.Ledger), auth)
	api.GET("/bookings/today", bookings.TodayHandler(d.Ledger), admin)
	api.GET("/bookings/today/count", bookings.TodayCountHandler(d.Ledger), admin)
	api.GET("/bookings/date/:date", bookings.ByDateHandler(d.Ledger), admin)

	// 帳單
	api.POST("/bills/generate", bills.GenerateHandler(d.Billing), admin)
	api.POST("/bills/generate-all", bills.GenerateAllHandler(d.Billing), admin)
	api.GET("/bills/my-bills", bills.MyBillsHandler(d.Billing), auth)
	api.GET("/bills/user/:userId", bills.UserBillsHandler(d.Billing), admin)
	api.GET("/bills/:id", bills.GetHandler(d.Billing), auth)
	api.GET("/bills", bills.ListHandler(d.Billing), admin)
	api.PUT("/bills/:id/pay", bills.MarkPaidHandler(d.Billing), admin)
}
