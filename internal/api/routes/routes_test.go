package routes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techpartner-api-server/config"
	"techpartner-api-server/internal/ai"
	"techpartner-api-server/internal/api/routes"
	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/socket"
	"techpartner-api-server/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newTestRouter dựng router đầy đủ với sync client chưa cấu hình
// (local mode) để mọi pushAsync là no-op.
func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	st := store.New(nil)
	syncClient := github.NewClient("http://127.0.0.1:0", github.Config{}, st, nil)
	aiClient := ai.NewClient("http://127.0.0.1:0", nil)
	runtime := config.NewRuntime(config.Config{})
	hub := socket.NewHub(nil)

	return routes.SetupRouter(st, syncClient, aiClient, runtime, hub, zap.NewNop()), st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAssetLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/assets/", gin.H{
		"location_id": "loc_3",
		"type_id":     "type_ac",
		"brand":       "Daikin",
		"cond":        "Rusak",
		"issue":       "tidak dingin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created models.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.CritMed, created.Criticality, "criticality defaults when omitted")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/assets/?cond=Rusak", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/assets/?cond=Hancur", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/assets/bulk-condition", gin.H{
		"ids":  []string{created.ID},
		"cond": "Normal",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/assets/"+created.ID+"/qr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"`+created.ID+`","loc":"loc_3"}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/assets/nope/qr", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAsset_ValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	// thiếu location_id → binding chặn trước khi tới store
	rec := doJSON(t, router, http.MethodPost, "/api/v1/assets/", gin.H{"type_id": "type_ac"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// rusak mà không có keluhan → lỗi từ store
	rec = doJSON(t, router, http.MethodPost, "/api/v1/assets/", gin.H{
		"location_id": "loc_1",
		"type_id":     "type_ac",
		"cond":        "Rusak",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "error")
}

func TestWorkOrderFlow(t *testing.T) {
	router, st := newTestRouter(t)

	a, err := st.UpsertAsset(models.Asset{LocationID: "loc_1", TypeID: "type_ac"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workorders/", gin.H{
		"asset_id": a.ID,
		"title":    "Servis AC",
		"priority": "Critical",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.WorkOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, models.WOOpen, created.Status)
	require.True(t, strings.HasPrefix(created.No, "WO/"))

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/workorders/"+created.ID+"/status", gin.H{
		"status": "DONE",
		"notes":  "ganti kapasitor",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var done models.WorkOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	require.Equal(t, models.WODone, done.Status)
	require.NotEmpty(t, done.CompletedAt)

	// DONE phải kéo PM engine cập nhật tài sản
	asset, ok := st.Asset(a.ID)
	require.True(t, ok)
	require.NotEmpty(t, asset.NextPMDate)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/workorders/wo_missing/status", gin.H{"status": "DONE"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/workorders/"+created.ID+"/status", gin.H{"status": "BURNED"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentAndBackup(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, models.SchemaVersion, doc.Meta.Version)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/backup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "techpartner-backup-")
}

func restoreRequest(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRestore(t *testing.T) {
	router, st := newTestRouter(t)

	doc := models.DefaultDocument()
	doc.Meta.AgencyName = "Instansi Restore"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	body, contentType := restoreRequest(t, raw)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restore", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Instansi Restore", st.Snapshot().Meta.AgencyName)
}

func TestRestore_RejectsWrongShape(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := restoreRequest(t, []byte(`{"foo":"bar"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restore", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "meta and assets")
}

func TestPushNow_OfflineMode(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/push", gin.H{"message": "manual"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Offline mode")
}

func TestSyncNow_NotConfigured(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sync", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettings_RedactsSecrets(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Contains(t, got, "token_set")
	require.Contains(t, got, "gemini_key_set")
	require.NotContains(t, rec.Body.String(), "ghp_")
}

func TestAIChat_NotConfigured(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/ai/chat", gin.H{"message": "halo"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReports_ReturnWorkbooks(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/reports/assets.xlsx",
		"/api/v1/reports/workorders.xlsx",
		"/api/v1/reports/finances.xlsx",
	} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
		require.NotEmpty(t, rec.Body.Bytes())
	}
}

func TestMasterData(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/master/locations", gin.H{
		"name":      "Lantai 3",
		"type":      "AREA",
		"parent_id": "loc_root",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/master/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var locations []models.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	require.Greater(t, len(locations), 5, "default master plus the new entry")
}
