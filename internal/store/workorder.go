// internal/store/workorder.go
package store

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
)

// defaultPMInterval áp dụng khi type của tài sản không còn resolve được.
const defaultPMInterval = 90

// CreateWorkOrder mở một phiếu mới ở trạng thái OPEN và chèn vào đầu
// danh sách. Số phiếu đánh theo tháng tạo và số lượng phiếu hiện có.
func (s *Store) CreateWorkOrder(assetID, title string, priority models.WOPriority, desc string, woType models.WOType) (models.WorkOrder, error) {
	if assetID == "" {
		return models.WorkOrder{}, fmt.Errorf("%w: asset_id is required", ErrValidation)
	}
	if title == "" {
		return models.WorkOrder{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if priority == "" {
		priority = models.PriorityMed
	}
	if !priority.Valid() {
		return models.WorkOrder{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}
	if woType == "" {
		woType = models.WORepair
	}
	if !woType.Valid() {
		return models.WorkOrder{}, fmt.Errorf("%w: unknown work order type %q", ErrValidation, woType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := models.WorkOrder{
		ID:        "wo_" + newID(),
		No:        fmt.Sprintf("WO/%s/%d", now.Format("0601"), len(s.doc.WorkOrders)+1),
		AssetID:   assetID,
		Title:     title,
		Desc:      desc,
		Priority:  priority,
		Type:      woType,
		Status:    models.WOOpen,
		CreatedAt: now.Format(time.RFC3339),
		UpdatedAt: now.Format(time.RFC3339),
		Photos:    models.PhotoSet{Before: []string{}, After: []string{}},
	}

	s.doc.WorkOrders = append([]models.WorkOrder{item}, s.doc.WorkOrders...)
	s.logger.Info("Work order created", zap.String("no", item.No), zap.String("asset_id", assetID))
	return item, nil
}

// UpdateWorkOrderStatus chuyển trạng thái một phiếu. Id lạ là no-op.
// Chuyển vào DONE luôn kích hoạt PM engine trên tài sản liên quan, kể cả
// khi phiếu đã DONE từ trước — ngày servis và lịch PM sẽ bị tính lại từ
// hôm nay (hành vi giữ nguyên từ bản gốc, có test riêng ghi nhận).
func (s *Store) UpdateWorkOrderStatus(id string, status models.WOStatus, notes string) (models.WorkOrder, bool, error) {
	if !status.Valid() {
		return models.WorkOrder{}, false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.WorkOrders {
		w := &s.doc.WorkOrders[i]
		if w.ID != id {
			continue
		}

		now := s.now()
		w.Status = status
		w.UpdatedAt = now.Format(time.RFC3339)
		if notes != "" {
			w.TechNotes = notes
		}

		if status == models.WODone {
			w.CompletedAt = now.Format(time.RFC3339)
			s.applyPMLocked(w, now)
		}

		s.logger.Info("Work order status changed",
			zap.String("no", w.No),
			zap.String("status", string(status)),
		)
		return *w, true, nil
	}

	return models.WorkOrder{}, false, nil
}

// applyPMLocked là side effect tự động khi phiếu hoàn tất:
//  a. cập nhật ngày servis cuối của tài sản;
//  b. phiếu Repair trên tài sản Rusak đưa tài sản về Normal và xóa issue;
//  c. tính next_pm_date theo pm_interval của loại tài sản
//     (mặc định 90 ngày nếu loại không resolve được, bỏ qua nếu interval = 0).
func (s *Store) applyPMLocked(w *models.WorkOrder, now time.Time) {
	for i := range s.doc.Assets {
		a := &s.doc.Assets[i]
		if a.ID != w.AssetID {
			continue
		}

		today := now.Format(dateLayout)
		a.Service = today

		if a.Cond == models.CondBroken && w.Type == models.WORepair {
			a.Cond = models.CondNormal
			a.Issue = ""
		}

		interval := defaultPMInterval
		for _, t := range s.doc.Master.AssetTypes {
			if t.ID == a.TypeID {
				interval = t.PMInterval
				break
			}
		}
		if interval > 0 {
			a.NextPMDate = now.AddDate(0, 0, interval).Format(dateLayout)
		}

		s.logger.Info("PM schedule updated",
			zap.String("asset_id", a.ID),
			zap.String("next_pm_date", a.NextPMDate),
		)
		return
	}
	// tài sản đã bị xóa: phiếu vẫn DONE, không có side effect
	s.logger.Warn("Work order completed for missing asset", zap.String("asset_id", w.AssetID))
}

// AddWorkOrderPhoto gắn một ảnh (đã nén thành data URL) vào bucket
// before/after của phiếu. Id lạ là no-op.
func (s *Store) AddWorkOrderPhoto(id, slot, dataURL string) (bool, error) {
	if slot != "before" && slot != "after" {
		return false, fmt.Errorf("%w: photo slot must be before or after", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.WorkOrders {
		w := &s.doc.WorkOrders[i]
		if w.ID != id {
			continue
		}
		if slot == "before" {
			w.Photos.Before = append(w.Photos.Before, dataURL)
		} else {
			w.Photos.After = append(w.Photos.After, dataURL)
		}
		return true, nil
	}
	return false, nil
}

// WorkOrders trả về danh sách phiếu đã sort: ưu tiên cao trước,
// cùng ưu tiên thì phiếu mới tạo đứng trước.
func (s *Store) WorkOrders() []models.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WorkOrder, len(s.doc.WorkOrders))
	copy(out, s.doc.WorkOrders)

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// WorkOrder tìm một phiếu theo id.
func (s *Store) WorkOrder(id string) (models.WorkOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.doc.WorkOrders {
		if w.ID == id {
			return w, true
		}
	}
	return models.WorkOrder{}, false
}
