package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/handler"
)

const sessionName = "habitlog_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/api/login", api.Login)
	r.POST("/api/logout", api.Logout)

	// 配置管理员后，其余 API 需要登录
	apiGroup := r.Group("/api")
	apiGroup.Use(api.AuthRequired(), api.LocaleMiddleware())
	{
		apiGroup.GET("/session", api.Session)

		apiGroup.GET("/habits", api.ListHabits)
		apiGroup.POST("/habits", api.CreateHabit)
		apiGroup.GET("/habits/:id", api.GetHabit)
		apiGroup.PUT("/habits/:id", api.UpdateHabit)
		apiGroup.DELETE("/habits/:id", api.DeleteHabit)
		apiGroup.POST("/habits/:id/archive", api.ArchiveHabit)
		apiGroup.GET("/habits/:id/stats", api.GetHabitStats)
		apiGroup.GET("/habits/:id/heatmap", api.GetHabitHeatmap)
		apiGroup.GET("/habits/:id/heatmap.png", api.GetHabitHeatmapImage)

		apiGroup.GET("/categories", api.ListCategories)
		apiGroup.POST("/categories", api.CreateCategory)
		apiGroup.PUT("/categories/:id", api.UpdateCategory)
		apiGroup.DELETE("/categories/:id", api.DeleteCategory)

		apiGroup.GET("/logs", api.GetDayLogs)
		apiGroup.POST("/logs/:date/:habitId/toggle", api.ToggleLog)
		apiGroup.PUT("/logs/:date/:habitId", api.SetLogValue)
		apiGroup.DELETE("/logs/:date/:habitId", api.ClearLog)

		apiGroup.GET("/analytics/summary", api.GetSummary)
		apiGroup.GET("/analytics/series", api.GetSeries)

		apiGroup.GET("/state/export", api.ExportState)
		apiGroup.POST("/state/import", api.ImportState)
	}

	return r
}
