// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event là thông báo đẩy xuống các dashboard đang mở: phiếu đổi trạng
// thái, sync xong, restore xong...
type Event struct {
	Type    string    `json:"type"`
	Ref     string    `json:"ref,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Hub quản lý tất cả các client WebSocket.
type Hub struct {
	// clients lưu các kết nối đang mở, key là id sinh lúc kết nối.
	clients map[string]*websocket.Conn
	// mu đảm bảo an toàn khi truy cập map clients từ nhiều goroutine.
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub tạo một Hub mới.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
	}
}

// Register thêm một client mới vào Hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	h.logger.Info("WebSocket client registered", zap.String("client", clientID))
}

// Unregister xóa một client khỏi Hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		h.logger.Info("WebSocket client unregistered", zap.String("client", clientID))
	}
}

// Broadcast gửi một event tới mọi client đang kết nối. Client gửi lỗi
// không làm hỏng các client khác, chỉ bị log lại.
func (h *Hub) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("Failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.logger.Warn("Failed to push event", zap.String("client", id), zap.Error(err))
		}
	}
}

// Count trả về số client đang kết nối.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
