package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/locale"
	"github.com/habitlog/internal/service"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	habits      *service.HabitService
	categories  *service.CategoryService
	habitLogs   *service.HabitLogService
	analytics   analyticsProvider
	state       *service.StateService
	language    string
	heatmapDays int
	authEnabled bool
	now         func() time.Time
}

// Options 控制 API 的展示默认值
type Options struct {
	DefaultLanguage string
	HeatmapDays     int
	AuthEnabled     bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	heatmapDays := opts.HeatmapDays
	if heatmapDays <= 0 {
		heatmapDays = 90
	}

	return &API{
		db:          gdb,
		habits:      service.NewHabitService(gdb),
		categories:  service.NewCategoryService(gdb),
		habitLogs:   service.NewHabitLogService(gdb),
		analytics:   service.NewAnalyticsService(gdb),
		state:       service.NewStateService(gdb),
		language:    locale.Resolve(opts.DefaultLanguage),
		heatmapDays: heatmapDays,
		authEnabled: opts.AuthEnabled,
		now:         time.Now,
	}
}

// WithClock 替换时间来源，便于测试固定“今天”
func (a *API) WithClock(now func() time.Time) *API {
	if now != nil {
		a.now = now
	}
	return a
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) today() time.Time {
	return a.now().In(time.Local)
}

func formatDay(t time.Time) string {
	return t.Format(dateFormat)
}

func isJSONRequest(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "application/json")
}
