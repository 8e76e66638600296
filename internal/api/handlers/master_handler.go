// internal/api/handlers/master_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

// MasterHandler quản lý master data: cây vị trí và các loại tài sản.
type MasterHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Logger *zap.Logger
}

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	ParentID string `json:"parent_id"`
}

type CreateAssetTypeRequest struct {
	Name       string `json:"name" binding:"required"`
	PMInterval int    `json:"pm_interval"`
}

func (h *MasterHandler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Locations())
}

func (h *MasterHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.Store.AddLocation(models.Location{
		Name:     req.Name,
		Type:     models.LocationType(req.Type),
		ParentID: req.ParentID,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Master: location "+loc.Name)
	c.JSON(http.StatusCreated, loc)
}

func (h *MasterHandler) ListAssetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.AssetTypes())
}

func (h *MasterHandler) CreateAssetType(c *gin.Context) {
	var req CreateAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.Store.AddAssetType(models.AssetType{
		Name:       req.Name,
		PMInterval: req.PMInterval,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Master: type "+t.Name)
	c.JSON(http.StatusCreated, t)
}
