// internal/api/handlers/workorder_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/images"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/socket"
	"techpartner-api-server/internal/store"
)

type WorkOrderHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Hub    *socket.Hub
	Logger *zap.Logger
}

type CreateWorkOrderRequest struct {
	AssetID  string `json:"asset_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Priority string `json:"priority"`
	Desc     string `json:"desc"`
	Type     string `json:"type"`
}

type UpdateWOStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ListWorkOrders trả danh sách phiếu đã sort theo độ ưu tiên.
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.WorkOrders())
}

// CreateWorkOrder mở một phiếu mới cho một tài sản.
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Store.CreateWorkOrder(
		req.AssetID,
		req.Title,
		models.WOPriority(req.Priority),
		req.Desc,
		models.WOType(req.Type),
	)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{
		Type:    "work_order_created",
		Ref:     item.ID,
		Message: fmt.Sprintf("%s: %s", item.No, item.Title),
	})
	pushAsync(h.Sync, h.Logger, "New WO: "+item.Title)
	c.JSON(http.StatusCreated, item)
}

// UpdateStatus chuyển trạng thái phiếu; DONE kéo theo PM engine cập nhật
// tài sản liên quan.
func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateWOStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, found, err := h.Store.UpdateWorkOrderStatus(c.Param("id"), models.WOStatus(req.Status), req.Notes)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	h.Hub.Broadcast(socket.Event{
		Type:    "work_order_status",
		Ref:     item.ID,
		Message: fmt.Sprintf("%s -> %s", item.No, item.Status),
	})
	pushAsync(h.Sync, h.Logger, fmt.Sprintf("WO %s -> %s", item.No, item.Status))
	c.JSON(http.StatusOK, item)
}

// UploadPhoto nhận ảnh minh chứng multipart, nén về JPEG 800px rồi gắn
// vào bucket before/after của phiếu.
func (h *WorkOrderHandler) UploadPhoto(c *gin.Context) {
	slot := c.Param("slot")

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

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

	found, err := h.Store.AddWorkOrderPhoto(c.Param("id"), slot, dataURL)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	pushAsync(h.Sync, h.Logger, "WO Photo "+slot)
	c.JSON(http.StatusOK, gin.H{"status": "success", "slot": slot})
}
