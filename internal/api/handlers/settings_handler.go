// internal/api/handlers/settings_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/config"
	"techpartner-api-server/internal/github"
)

// SettingsHandler là bản API của màn hình Pengaturan: bốn thông số
// kết nối, đổi được lúc chạy.
type SettingsHandler struct {
	Runtime *config.Runtime
	Sync    *github.Client
	Logger  *zap.Logger
}

type UpdateSettingsRequest struct {
	Owner     string `json:"owner" binding:"required"`
	Repo      string `json:"repo" binding:"required"`
	Token     string `json:"token"`
	GeminiKey string `json:"gemini_key"`
}

// GetSettings trả settings hiện tại; secret chỉ báo có/không, không lộ giá trị.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	cfg := h.Runtime.Get()
	c.JSON(http.StatusOK, gin.H{
		"owner":          cfg.GitHub.Owner,
		"repo":           cfg.GitHub.Repo,
		"token_set":      cfg.GitHub.Token != "",
		"gemini_key_set": cfg.Gemini.APIKey != "",
	})
}

// UpdateSettings lưu settings mới, cập nhật sync client rồi pull luôn
// một lần (giống saveSettings của bản PWA: lưu xong là syncData).
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Runtime.UpdateSettings(req.Owner, req.Repo, req.Token, req.GeminiKey); err != nil {
		h.Logger.Warn("Failed to persist settings", zap.Error(err))
	}

	cfg := h.Runtime.Get()
	h.Sync.SetConfig(github.Config{
		Owner: cfg.GitHub.Owner,
		Repo:  cfg.GitHub.Repo,
		Token: cfg.GitHub.Token,
		Path:  cfg.GitHub.Path,
	})

	synced := false
	if h.Sync.Configured() {
		if err := h.Sync.Pull(c.Request.Context()); err != nil {
			h.Logger.Warn("Sync after settings update failed", zap.Error(err))
		} else {
			synced = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "synced": synced})
}
