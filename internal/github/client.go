// internal/github/client.go
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

// DefaultAPIBase là endpoint chuẩn của GitHub REST API.
const DefaultAPIBase = "https://api.github.com"

// DefaultPath là tên file database trong repo.
const DefaultPath = "database.json"

var (
	// ErrNotConfigured: thiếu owner/repo/token, chỉ chạy được local mode.
	ErrNotConfigured = errors.New("github sync is not configured")
	// ErrConflict: SHA đã cũ, remote bị client khác ghi đè trước.
	// Người dùng phải pull lại rồi làm lại thay đổi — client không merge hộ.
	ErrConflict = errors.New("remote was updated by another client")
)

// Config là bốn thông số kết nối remote store, nạp từ settings.
type Config struct {
	Owner string
	Repo  string
	Token string
	Path  string
}

func (c Config) complete() bool {
	return c.Owner != "" && c.Repo != "" && c.Token != ""
}

// Client đồng bộ Document với một file JSON duy nhất trên GitHub qua
// contents API, optimistic concurrency bằng SHA. Mỗi client chỉ giữ đúng
// một SHA; mọi pull/push thành công đều ghi đè nó.
type Client struct {
	rest   *resty.Client
	store  *store.Store
	logger *zap.Logger

	mu  sync.Mutex
	cfg Config
	sha string
}

func NewClient(apiBase string, cfg Config, st *store.Store, logger *zap.Logger) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rest := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(20 * time.Second).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		rest:   rest,
		store:  st,
		logger: logger,
		cfg:    cfg,
	}
}

// SetConfig đổi thông số kết nối lúc runtime (màn hình Settings).
// Đổi repo nghĩa là file khác, nên SHA đang giữ bị bỏ.
func (c *Client) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Owner != c.cfg.Owner || cfg.Repo != c.cfg.Repo || cfg.Path != c.cfg.Path {
		c.sha = ""
	}
	c.cfg = cfg
}

// Configured cho biết client đã đủ thông số để sync hay chưa.
func (c *Client) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.complete()
}

type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Pull kéo document từ remote và merge vào store. File chưa tồn tại (404)
// nghĩa là lần chạy đầu: push luôn document hiện tại để khởi tạo.
// Pull thất bại không đụng vào state local.
func (c *Client) Pull(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.complete() {
		return ErrNotConfigured
	}

	var payload contentResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+c.cfg.Token).
		SetHeader("Cache-Control", "no-store").
		SetResult(&payload).
		Get(c.contentURL())
	if err != nil {
		return fmt.Errorf("failed to reach remote store: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		c.logger.Info("Remote database not found, initializing")
		return c.pushLocked(ctx, "Init Database TechPartner 6.0")
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("remote store returned HTTP %d", resp.StatusCode())
	}

	raw, err := decodeContent(payload.Content)
	if err != nil {
		return fmt.Errorf("failed to decode remote content: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("remote database is not valid JSON: %w", err)
	}

	// SHA mới chỉ được giữ lại khi toàn bộ decode thành công.
	c.sha = payload.SHA
	c.store.MergeRemote(doc)
	c.logger.Info("Pulled remote database", zap.String("sha", shortSHA(payload.SHA)))
	return nil
}

// Push serialize toàn bộ Document và ghi lên remote kèm SHA cuối cùng.
// Không có token thì coi như offline mode: thành công mà không gọi mạng.
// Thất bại chỉ log và trả lỗi, không retry, không queue.
func (c *Client) Push(ctx context.Context, commitMsg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.Token == "" {
		c.logger.Warn("Offline mode: changes kept in memory only")
		return nil
	}
	if !c.cfg.complete() {
		return ErrNotConfigured
	}
	return c.pushLocked(ctx, commitMsg)
}

func (c *Client) pushLocked(ctx context.Context, commitMsg string) error {
	doc := c.store.Snapshot()
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if commitMsg == "" {
		commitMsg = "Update Data"
	}
	body := putRequest{
		Message: "TechPartner: " + commitMsg,
		Content: encodeContent(raw),
		SHA:     c.sha,
	}

	var payload putResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+c.cfg.Token).
		SetBody(body).
		SetResult(&payload).
		Put(c.contentURL())
	if err != nil {
		c.logger.Warn("Cloud save failed", zap.Error(err))
		return fmt.Errorf("failed to reach remote store: %w", err)
	}

	// GitHub trả 409 (hoặc 422 với contents API) khi SHA gửi lên đã cũ.
	if resp.StatusCode() == http.StatusConflict || resp.StatusCode() == http.StatusUnprocessableEntity {
		c.logger.Warn("Cloud save rejected: stale version token", zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("%w (HTTP %d)", ErrConflict, resp.StatusCode())
	}
	if !resp.IsSuccess() {
		c.logger.Warn("Cloud save failed", zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("remote store returned HTTP %d", resp.StatusCode())
	}

	// SHA mới là điều kiện để push lần sau được chấp nhận.
	c.sha = payload.Content.SHA
	c.logger.Info("Cloud save OK", zap.String("commit", commitMsg), zap.String("sha", shortSHA(c.sha)))
	return nil
}

func (c *Client) contentURL() string {
	return fmt.Sprintf("/repos/%s/%s/contents/%s", c.cfg.Owner, c.cfg.Repo, c.cfg.Path)
}

// encodeContent mã hóa JSON sang Base64 chuẩn. Go thao tác trên byte UTF-8
// nên mọi code point (kể cả emoji) round-trip nguyên vẹn — tương đương
// cặp hàm b64Enc/b64Dec phía client cũ.
func encodeContent(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// decodeContent giải mã content từ GitHub; API chèn newline mỗi 60 ký tự
// nên phải lọc whitespace trước.
func decodeContent(content string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)
	return base64.StdEncoding.DecodeString(cleaned)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
