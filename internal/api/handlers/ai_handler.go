// internal/api/handlers/ai_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/config"
	"techpartner-api-server/internal/ai"
	"techpartner-api-server/internal/store"
)

type AIHandler struct {
	Store   *store.Store
	AI      *ai.Client
	Runtime *config.Runtime
	Logger  *zap.Logger
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type DiagnoseRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Issue string `json:"issue" binding:"required,min=5"`
}

// Chat chuyển câu hỏi của user tới Gemini kèm context thống kê hiện tại.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, req.Message)
}

// Diagnose dựng prompt chẩn đoán cho một tài sản cụ thể rồi hỏi AI —
// tương đương nút "Diagnosa AI" ở form aset.
func (h *AIHandler) Diagnose(c *gin.Context) {
	var req DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, ai.DiagnosisPrompt(req.Brand, req.Model, req.Issue))
}

func (h *AIHandler) respond(c *gin.Context, message string) {
	apiKey := h.Runtime.Get().Gemini.APIKey
	system := ai.SystemPrompt(h.Store.Stats())

	reply, err := h.AI.Chat(c.Request.Context(), apiKey, system, message)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gemini API key is not configured"})
			return
		}
		h.Logger.Warn("AI chat failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
