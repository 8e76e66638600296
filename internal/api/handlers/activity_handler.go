// internal/api/handlers/activity_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/images"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

type ActivityHandler struct {
	Store  *store.Store
	Sync   *github.Client
	Logger *zap.Logger
}

// ListActivities trả nhật ký công việc, mới nhất trước.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Activities())
}

// CreateActivity nhận form multipart (field text + ảnh tùy chọn) giống
// form nhật ký của bản PWA.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	item := models.Activity{
		Title: c.PostForm("title"),
		Time:  c.PostForm("time"),
		Tag:   c.PostForm("tag"),
		Desc:  c.PostForm("desc"),
		Date:  c.PostForm("date"),
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

	saved, err := h.Store.AddActivity(item)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	pushAsync(h.Sync, h.Logger, "Log: "+saved.Title)
	c.JSON(http.StatusCreated, saved)
}
