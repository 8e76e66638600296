// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"techpartner-api-server/config"
	"techpartner-api-server/internal/ai"
	"techpartner-api-server/internal/api/routes"
	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/logger"
	"techpartner-api-server/internal/socket"
	"techpartner-api-server/internal/store"
)

// syncTimeout giới hạn lần pull khởi động; quá hạn thì chạy tiếp ở
// local mode thay vì chặn server.
const syncTimeout = 10 * time.Second

func main() {
	// .env chỉ là tiện ích dev, thiếu cũng không sao
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Could not init logger: %v", err)
	}
	defer zlog.Sync()

	runtime := config.NewRuntime(cfg)
	st := store.New(zlog)
	wsHub := socket.NewHub(zlog)

	syncClient := github.NewClient(github.DefaultAPIBase, github.Config{
		Owner: cfg.GitHub.Owner,
		Repo:  cfg.GitHub.Repo,
		Token: cfg.GitHub.Token,
		Path:  cfg.GitHub.Path,
	}, st, zlog)

	aiClient := ai.NewClient(ai.DefaultAPIBase, zlog)

	// Pull khởi động (best effort): offline hay chưa cấu hình thì chạy
	// tiếp với document mặc định, người dùng sync tay sau.
	if syncClient.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		if err := syncClient.Pull(ctx); err != nil {
			zlog.Warn("Initial sync failed, starting in local mode", zap.Error(err))
		} else {
			zlog.Info("Initial sync OK")
		}
		cancel()
	} else {
		zlog.Info("Sync not configured, starting in local mode")
	}
	st.Migrate()

	router := routes.SetupRouter(st, syncClient, aiClient, runtime, wsHub, zlog)

	zlog.Info("Starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Failed to run server", zap.Error(err))
	}
}
