package router

import (
	"github.com/labstack/echo/v4"

	"taskdeck/internal/cache"
	"taskdeck/internal/database"
	"taskdeck/internal/handler"
	"taskdeck/internal/handler/auth"
	"taskdeck/internal/handler/tasks"
	"taskdeck/internal/middleware"
	"taskdeck/internal/worker"
)

// Setup registers all routes. The tasks group sits behind RequireAuth;
// registration, login and the health check are public.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	e.GET("/healthz", handler.HealthHandler(db, rdb))

	apiAuth := e.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(db))
	apiAuth.POST("/login", auth.LoginHandler(db))

	apiTasks := e.Group("/tasks", middleware.RequireAuth)
	apiTasks.POST("", tasks.CreateTaskHandler(db, rdb, wp))
	apiTasks.GET("", tasks.ListTasksHandler(db, rdb))
	apiTasks.PUT("/:id", tasks.UpdateTaskHandler(db, rdb, wp))
	apiTasks.DELETE("/:id", tasks.DeleteTaskHandler(db, rdb, wp))
}
