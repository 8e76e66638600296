// internal/ai/client.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"techpartner-api-server/internal/store"
)

// DefaultAPIBase là endpoint của Gemini API.
const DefaultAPIBase = "https://generativelanguage.googleapis.com"

// Model dùng cho chat chẩn đoán.
const Model = "gemini-2.5-flash-preview-09-2025"

// ErrNotConfigured: chưa có API key trong settings.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// Client gọi Gemini generateContent với system instruction là tóm tắt
// số liệu vận hành hiện tại.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

func NewClient(apiBase string, logger *zap.Logger) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rest := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{rest: rest, logger: logger}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction content   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat gửi câu hỏi của user kèm system instruction và trả về text
// (Markdown) từ model.
func (c *Client) Chat(ctx context.Context, apiKey, system, message string) (string, error) {
	if apiKey == "" {
		return "", ErrNotConfigured
	}

	body := generateRequest{
		Contents:          []content{{Parts: []part{{Text: message}}}},
		SystemInstruction: content{Parts: []part{{Text: system}}},
	}

	var payload generateResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetBody(body).
		SetResult(&payload).
		SetError(&payload).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", Model))
	if err != nil {
		c.logger.Warn("AI call failed", zap.Error(err))
		return "", fmt.Errorf("failed to reach AI endpoint: %w", err)
	}
	if !resp.IsSuccess() {
		if payload.Error != nil && payload.Error.Message != "" {
			return "", fmt.Errorf("AI endpoint returned HTTP %d: %s", resp.StatusCode(), payload.Error.Message)
		}
		return "", fmt.Errorf("AI endpoint returned HTTP %d", resp.StatusCode())
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "Maaf, saya tidak mendapatkan respon dari otak pusat.", nil
	}
	return payload.Candidates[0].Content.Parts[0].Text, nil
}

// SystemPrompt dựng system instruction "TechPartner Consultant" từ thống
// kê hiện tại — giữ nguyên giọng tiếng Indonesia của sản phẩm.
func SystemPrompt(st store.Stats) string {
	recent := strings.Join(st.RecentFinances, ", ")
	if recent == "" {
		recent = "Belum ada"
	}
	urgent := strings.Join(st.UrgentWO, ", ")
	if urgent == "" {
		urgent = "Tidak ada"
	}

	return fmt.Sprintf(`Anda adalah "TechPartner Consultant", asisten AI pakar manajemen aset dan teknisi pemeliharaan.
Konteks data saat ini di instansi %q:
- Total Aset: %d
- Aset Rusak: %d
- Perlu Servis/Telat: %d
- Work Order Aktif: %d
- Pengeluaran Terakhir: %s
- WO Prioritas: %s

Tugas Anda:
1. Jawab pertanyaan user berdasarkan data di atas.
2. Berikan saran teknis yang logis, efisien, dan profesional.
3. Gunakan Bahasa Indonesia yang lugas namun sopan.
4. Jika user bertanya hal di luar maintenance, arahkan kembali ke topik operasional.
5. Gunakan format Markdown (bold, list) agar mudah dibaca.`,
		st.Agency, st.TotalAssets, st.BrokenAssets, st.NeedService, st.ActiveWO, recent, urgent)
}

// DiagnosisPrompt dựng câu hỏi chẩn đoán cho một tài sản cụ thể
// (nút "Diagnosa AI" ở form aset).
func DiagnosisPrompt(brand, model, issue string) string {
	return fmt.Sprintf("Berikan diagnosa teknis dan langkah perbaikan untuk: %s %s dengan keluhan %q", brand, model, issue)
}
