package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/handler"
	"github.com/habitlog/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.AuthEnabled() {
		created, err := db.EnsureAdmin(db.DB, cfg.AdminUserName, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to ensure admin user: %v", err)
		}
		if created {
			log.Printf("[habitlog] created admin user %s", cfg.AdminUserName)
		}
	} else {
		log.Printf("[habitlog] ADMIN_USER_NAME/ADMIN_PASSWORD not set, API is unauthenticated")
	}

	api := handler.NewAPI(db.DB, handler.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		HeatmapDays:     cfg.HeatmapDays,
		AuthEnabled:     cfg.AuthEnabled(),
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	log.Printf("[habitlog] listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
