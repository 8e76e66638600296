// internal/api/handlers/finance_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/images"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

type FinanceHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Logger *zap.Logger
}

// ListFinances trả danh sách chi tiêu, mới nhất trước.
func (h *FinanceHandler) ListFinances(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Finances())
}

// CreateFinance ghi một khoản chi kèm ảnh hóa đơn tùy chọn.
func (h *FinanceHandler) CreateFinance(c *gin.Context) {
	cost, err := strconv.ParseInt(c.PostForm("cost"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost must be an integer"})
		return
	}

	item := models.Finance{
		Item: c.PostForm("item"),
		Cost: cost,
		Date: c.PostForm("date"),
	}

	if file, err := c.FormFile("photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer src.Close()

		dataURL, err := images.CompressToDataURL(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.Img = dataURL
	}

	saved, err := h.Store.AddFinance(item)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Fin: "+saved.Item)
	c.JSON(http.StatusCreated, saved)
}
