package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/likecompany/file/internal/admin"
	"github.com/likecompany/file/internal/authgate"
	"github.com/likecompany/file/internal/config"
	"github.com/likecompany/file/internal/database"
	"github.com/likecompany/file/internal/middleware"
	"github.com/likecompany/file/internal/modules/file"
	jwtsvc "github.com/likecompany/file/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&file.Record{}); err != nil {
		log.Fatal(err)
	}

	fileRepo := file.NewRepository(db)

	var gate file.Authorizer
	if cfg.AuthBase != "" {
		gate = authgate.NewClient(cfg.AuthBase)
		log.Println("Upload authorization enabled:", cfg.AuthBase)
	} else {
		log.Println("Upload authorization disabled (AUTH_BASE is empty)")
	}

	fileService := file.NewService(fileRepo, gate, cfg.MaxFileSize)
	fileHandler := file.NewHandler(fileService)

	r := gin.Default()

	file.RegisterFallbacks(r)
	file.RegisterRoutes(r, fileHandler)

	if cfg.Debug {
		j := jwtsvc.New(cfg.AdminJWTSecret, 24*time.Hour)
		adminHandler := admin.NewHandler(fileRepo)
		admin.RegisterRoutes(r, adminHandler, middleware.AdminAuth(j))
		log.Println("Admin surface enabled at /admin/files")
	}

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
