// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"users-api/internal/cache"
	"users-api/internal/database"
	"users-api/internal/handler"
	"users-api/internal/handler/users"
)

// Setup 註冊所有路由；cch 為 nil 表示未啟用快取
func Setup(e *echo.Echo, svc users.UserService, db database.DB, cch cache.Cache) {
	// API 文件
	e.GET("/", handler.DocsRedirectHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	// 健康檢查
	e.GET("/ping", handler.PingHandler(db, cch))

	// Users CRUD
	apiUsers := e.Group("/users")
	apiUsers.POST("", users.CreateUserHandler(svc))
	apiUsers.GET("/:user_id", users.GetUserHandler(svc))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(svc))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(svc))
}
