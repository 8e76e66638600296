// internal/api/handlers/sync_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/socket"
	"techpartner-api-server/internal/store"
)

// SyncHandler phủ các thao tác trên toàn Document: pull/push thủ công,
// backup/restore và đọc nguyên document.
type SyncHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Hub    *socket.Hub
	Logger *zap.Logger
}

type PushRequest struct {
	Message string `json:"message"`
}

// GetDocument trả toàn bộ Document hiện tại.
func (h *SyncHandler) GetDocument(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot())
}

// SyncNow pull từ remote. Kết quả luôn là {status, message} để client
// hiển thị thẳng, lỗi sync không bao giờ làm view chết.
func (h *SyncHandler) SyncNow(c *gin.Context) {
	if err := h.Sync.Pull(c.Request.Context()); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, github.ErrNotConfigured) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	h.Hub.Broadcast(socket.Event{Type: "sync", Message: "Data tersinkronisasi."})
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Data tersinkronisasi."})
}

// PushNow push thủ công với commit message tùy chọn. Chưa có token thì
// là no-op thành công (local mode).
func (h *SyncHandler) PushNow(c *gin.Context) {
	var req PushRequest
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "Update Data"
	}

	if !h.Sync.Configured() {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Offline mode: changes kept locally."})
		return
	}

	if err := h.Sync.Push(c.Request.Context(), req.Message); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, github.ErrConflict) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Cloud save OK."})
}

// Backup tải về toàn bộ Document dạng JSON thụt lề.
func (h *SyncHandler) Backup(c *gin.Context) {
	raw, err := json.MarshalIndent(h.Store.Snapshot(), "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize document"})
		return
	}

	filename := fmt.Sprintf("techpartner-backup-%s.json", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", raw)
}

// Restore nhận một file backup, validate shape tối thiểu (meta + assets),
// thay nguyên Document, chạy migration rồi push ngay. Push hỏng không
// hủy restore — document đã là của local, người dùng sync lại sau.
func (h *SyncHandler) Restore(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Backup file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Backup is not valid JSON"})
		return
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Backup is not a valid document"})
		return
	}

	shapeKeys := make(map[string]any, len(shape))
	for k := range shape {
		shapeKeys[k] = struct{}{}
	}
	if err := h.Store.RestoreBackup(shapeKeys, doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Backup must contain meta and assets"})
		return
	}

	h.Hub.Broadcast(socket.Event{Type: "restore", Message: "Database restored from backup."})

	pushed := true
	if err := h.Sync.Push(c.Request.Context(), "Restore Backup"); err != nil {
		h.Logger.Warn("Push after restore failed", zap.Error(err))
		pushed = false
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "pushed": pushed})
}
