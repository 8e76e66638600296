// internal/api/handlers/push.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/store"
)

// pushTimeout chặn một lần push treo quá lâu; quá hạn coi như đang
// offline chứ không hủy request phía dưới.
const pushTimeout = 20 * time.Second

// pushAsync đẩy document lên remote sau mỗi thao tác ghi, kiểu
// fire-and-forget như client cũ: thất bại chỉ log, dữ liệu local giữ
// nguyên và người dùng sync tay lại sau.
func pushAsync(sync *github.Client, logger *zap.Logger, commitMsg string) {
	if sync == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := sync.Push(ctx, commitMsg); err != nil {
			logger.Warn("Background push failed", zap.String("commit", commitMsg), zap.Error(err))
		}
	}()
}

// abortStoreError map lỗi store sang HTTP: input sai là 400, còn lại 500.
func abortStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
