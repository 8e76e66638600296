// internal/store/asset.go
package store

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
)

func newID() string {
	return uuid.NewString()
}

// UpsertAsset tạo mới hoặc merge theo id. Khi merge, chỉ field có giá trị
// mới ghi đè — các field do PM engine quản lý (service, next_pm_date)
// được giữ nguyên nếu bản edit không đụng tới.
func (s *Store) UpsertAsset(item models.Asset) (models.Asset, error) {
	if item.LocationID == "" || item.TypeID == "" {
		return models.Asset{}, fmt.Errorf("%w: location_id and type_id are required", ErrValidation)
	}
	if item.Cond == "" {
		item.Cond = models.CondNormal
	}
	if !item.Cond.Valid() {
		return models.Asset{}, fmt.Errorf("%w: unknown condition %q", ErrValidation, item.Cond)
	}
	if item.Cond != models.CondNormal && item.Issue == "" {
		return models.Asset{}, fmt.Errorf("%w: issue is required when condition is not Normal", ErrValidation)
	}
	if item.Criticality == "" {
		item.Criticality = models.CritMed
	}
	if !item.Criticality.Valid() {
		return models.Asset{}, fmt.Errorf("%w: unknown criticality %q", ErrValidation, item.Criticality)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
		s.doc.Assets = append(s.doc.Assets, item)
		s.logger.Info("Asset created", zap.String("id", item.ID))
		return item, nil
	}

	for i := range s.doc.Assets {
		if s.doc.Assets[i].ID != item.ID {
			continue
		}
		merged := s.doc.Assets[i]
		merged.LocationID = item.LocationID
		merged.TypeID = item.TypeID
		merged.Brand = item.Brand
		merged.Model = item.Model
		merged.Cond = item.Cond
		merged.Issue = item.Issue
		if item.Install != "" {
			merged.Install = item.Install
		}
		if item.Service != "" {
			merged.Service = item.Service
		}
		if item.NextPMDate != "" {
			merged.NextPMDate = item.NextPMDate
		}
		if item.Criticality != "" {
			merged.Criticality = item.Criticality
		}
		if merged.Cond == models.CondNormal {
			merged.Issue = ""
		}
		s.doc.Assets[i] = merged
		s.logger.Info("Asset updated", zap.String("id", item.ID))
		return merged, nil
	}

	// id lạ: coi như tạo mới với id do client cấp (giữ hành vi của bản cũ)
	s.doc.Assets = append(s.doc.Assets, item)
	s.logger.Info("Asset created", zap.String("id", item.ID))
	return item, nil
}

// Assets trả về bản sao danh sách tài sản, lọc theo condition nếu có.
func (s *Store) Assets(cond models.Condition) []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Asset, 0, len(s.doc.Assets))
	for _, a := range s.doc.Assets {
		if cond != "" && a.Cond != cond {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Asset tìm một tài sản theo id.
func (s *Store) Asset(id string) (models.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.doc.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}

// BulkDeleteAssets xóa mọi tài sản có id nằm trong ids, trả về số lượng đã xóa.
func (s *Store) BulkDeleteAssets(ids []string) int {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Assets[:0]
	removed := 0
	for _, a := range s.doc.Assets {
		if _, hit := set[a.ID]; hit {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.doc.Assets = kept
	if removed > 0 {
		s.logger.Info("Bulk delete", zap.Int("removed", removed))
	}
	return removed
}

// BulkSetCondition đổi condition hàng loạt; Normal thì xóa luôn issue.
func (s *Store) BulkSetCondition(ids []string, cond models.Condition) (int, error) {
	if !cond.Valid() {
		return 0, fmt.Errorf("%w: unknown condition %q", ErrValidation, cond)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.doc.Assets {
		if _, hit := set[s.doc.Assets[i].ID]; !hit {
			continue
		}
		s.doc.Assets[i].Cond = cond
		if cond == models.CondNormal {
			s.doc.Assets[i].Issue = ""
		}
		updated++
	}
	return updated, nil
}
