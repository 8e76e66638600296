// internal/store/store.go
package store

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
)

// ErrValidation báo input bị từ chối trước khi chạm vào Document.
var ErrValidation = errors.New("validation failed")

// ErrInvalidBackup báo file restore không đạt shape tối thiểu (meta + assets).
var ErrInvalidBackup = errors.New("invalid backup document")

const dateLayout = "2006-01-02"

// Store giữ Document trong bộ nhớ và là cửa duy nhất để thay đổi nó.
// HTTP server chạy đồng thời nên mọi thao tác đều đi qua RWMutex,
// khác với bản PWA một luồng.
type Store struct {
	mu     sync.RWMutex
	doc    models.Document
	logger *zap.Logger

	// now được tách ra để test có thể cố định thời gian.
	now func() time.Time
}

func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		doc:    models.DefaultDocument(),
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot trả về bản sao sâu của Document để serialize mà không giữ lock.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Replace thay toàn bộ Document (sau pull hoặc restore) rồi chạy migration.
func (s *Store) Replace(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.EnsureShape()
	if n := doc.Sanitize(); n > 0 {
		s.logger.Warn("Sanitized unrecognized enum values in document", zap.Int("fields", n))
	}
	s.doc = doc
	s.migrateLocked()
}

// MergeRemote áp nội dung kéo về từ remote lên state hiện tại theo đúng
// kỹ thuật merge an toàn của client cũ: field thiếu giữ giá trị local,
// mảng thiếu rơi về mảng rỗng, không bao giờ là null.
func (s *Store) MergeRemote(remote models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if remote.Meta.Version != 0 || remote.Meta.AgencyName != "" {
		s.doc.Meta = remote.Meta
	}
	if len(remote.Master.Locations) > 0 || len(remote.Master.AssetTypes) > 0 {
		s.doc.Master = remote.Master
	}
	s.doc.Assets = remote.Assets
	s.doc.WorkOrders = remote.WorkOrders
	s.doc.Activities = remote.Activities
	s.doc.Finances = remote.Finances

	s.doc.EnsureShape()
	if n := s.doc.Sanitize(); n > 0 {
		s.logger.Warn("Sanitized unrecognized enum values from remote", zap.Int("fields", n))
	}
	s.migrateLocked()
	s.doc.Meta.LastSync = s.now().Format(time.RFC3339)
}

// RestoreBackup kiểm tra shape tối thiểu rồi thay Document.
// Backup hỏng không được đụng vào state hiện tại.
func (s *Store) RestoreBackup(raw map[string]any, doc models.Document) error {
	if _, ok := raw["meta"]; !ok {
		return ErrInvalidBackup
	}
	if _, ok := raw["assets"]; !ok {
		return ErrInvalidBackup
	}
	s.Replace(doc)
	return nil
}

// Migrate chạy migration engine; trả về true nếu có nâng cấp schema.
func (s *Store) Migrate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateLocked()
}

// LocationName resolve id vị trí, không bao giờ lỗi với id lạ.
func (s *Store) LocationName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return locationNameLocked(&s.doc, id)
}

// TypeName resolve id loại tài sản, rơi về nhãn chung khi không khớp.
func (s *Store) TypeName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return typeNameLocked(&s.doc, id)
}

func locationNameLocked(doc *models.Document, id string) string {
	for _, l := range doc.Master.Locations {
		if l.ID == id {
			return l.Name
		}
	}
	return models.FallbackLocationName
}

func typeNameLocked(doc *models.Document, id string) string {
	for _, t := range doc.Master.AssetTypes {
		if t.ID == id {
			return t.Name
		}
	}
	return models.FallbackTypeName
}

// AddLocation thêm một vị trí mới vào master data.
func (s *Store) AddLocation(loc models.Location) (models.Location, error) {
	if loc.Name == "" || !loc.Type.Valid() {
		return models.Location{}, ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc.ID == "" {
		loc.ID = "loc_" + newID()
	}
	s.doc.Master.Locations = append(s.doc.Master.Locations, loc)
	return loc, nil
}

// AddAssetType thêm một loại tài sản mới vào master data.
func (s *Store) AddAssetType(t models.AssetType) (models.AssetType, error) {
	if t.Name == "" || t.PMInterval < 0 {
		return models.AssetType{}, ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = "type_" + newID()
	}
	s.doc.Master.AssetTypes = append(s.doc.Master.AssetTypes, t)
	return t, nil
}

// Locations trả về bản sao danh sách vị trí.
func (s *Store) Locations() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Location(nil), s.doc.Master.Locations...)
}

// AssetTypes trả về bản sao danh sách loại tài sản.
func (s *Store) AssetTypes() []models.AssetType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AssetType(nil), s.doc.Master.AssetTypes...)
}
