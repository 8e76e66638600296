// internal/api/handlers/asset_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

type AssetHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Logger *zap.Logger
}

// SaveAssetRequest là body của upsert: id rỗng nghĩa là tạo mới.
type SaveAssetRequest struct {
	ID          string `json:"id"`
	LocationID  string `json:"location_id" binding:"required"`
	TypeID      string `json:"type_id" binding:"required"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Cond        string `json:"cond"`
	Issue       string `json:"issue"`
	Install     string `json:"install"`
	Service     string `json:"service"`
	NextPMDate  string `json:"next_pm_date"`
	Criticality string `json:"criticality"`
}

type BulkIDsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type BulkConditionRequest struct {
	IDs  []string `json:"ids" binding:"required"`
	Cond string   `json:"cond" binding:"required"`
}

// ListAssets trả danh sách tài sản, lọc được theo ?cond=.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	cond := models.Condition(c.Query("cond"))
	if cond != "" && !cond.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown condition %q", cond)})
		return
	}
	c.JSON(http.StatusOK, h.Store.Assets(cond))
}

// SaveAsset upsert một tài sản rồi đẩy document lên cloud.
func (h *AssetHandler) SaveAsset(c *gin.Context) {
	var req SaveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Store.UpsertAsset(models.Asset{
		ID:          req.ID,
		LocationID:  req.LocationID,
		TypeID:      req.TypeID,
		Brand:       req.Brand,
		Model:       req.Model,
		Cond:        models.Condition(req.Cond),
		Issue:       req.Issue,
		Install:     req.Install,
		Service:     req.Service,
		NextPMDate:  req.NextPMDate,
		Criticality: models.Criticality(req.Criticality),
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Asset: "+h.Store.LocationName(saved.LocationID))
	c.JSON(http.StatusOK, saved)
}

// BulkDelete xóa các tài sản được chọn; id không khớp bị bỏ qua.
func (h *AssetHandler) BulkDelete(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	removed := h.Store.BulkDeleteAssets(req.IDs)
	pushAsync(h.Sync, h.Logger, "Bulk Del")
	c.JSON(http.StatusOK, gin.H{"status": "success", "removed": removed})
}

// BulkSetCondition đổi condition hàng loạt; Normal xóa luôn issue.
func (h *AssetHandler) BulkSetCondition(c *gin.Context) {
	var req BulkConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Store.BulkSetCondition(req.IDs, models.Condition(req.Cond))
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Bulk Upd")
	c.JSON(http.StatusOK, gin.H{"status": "success", "updated": updated})
}

// GetAssetQR trả payload QR để in nhãn dán: JSON gọn chứa id và vị trí.
func (h *AssetHandler) GetAssetQR(c *gin.Context) {
	asset, ok := h.Store.Asset(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	payload, _ := json.Marshal(gin.H{"id": asset.ID, "loc": asset.LocationID})
	c.Data(http.StatusOK, "application/json", payload)
}
