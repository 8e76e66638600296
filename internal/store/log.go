// internal/store/log.go
package store

import (
	"fmt"

	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
)

// AddActivity ghi một dòng nhật ký mới vào đầu danh sách (mới nhất trước).
func (s *Store) AddActivity(item models.Activity) (models.Activity, error) {
	if item.Title == "" {
		return models.Activity{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = newID()
	if item.Date == "" {
		item.Date = s.now().Format(dateLayout)
	}
	s.doc.Activities = append([]models.Activity{item}, s.doc.Activities...)
	s.logger.Info("Activity logged", zap.String("title", item.Title))
	return item, nil
}

// Activities trả về bản sao danh sách nhật ký.
func (s *Store) Activities() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Activity(nil), s.doc.Activities...)
}

// AddFinance ghi một khoản chi mới vào đầu danh sách.
func (s *Store) AddFinance(item models.Finance) (models.Finance, error) {
	if item.Item == "" {
		return models.Finance{}, fmt.Errorf("%w: item is required", ErrValidation)
	}
	if item.Cost < 0 {
		return models.Finance{}, fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = newID()
	if item.Date == "" {
		item.Date = s.now().Format(dateLayout)
	}
	s.doc.Finances = append([]models.Finance{item}, s.doc.Finances...)
	s.logger.Info("Expense logged", zap.String("item", item.Item), zap.Int64("cost", item.Cost))
	return item, nil
}

// Finances trả về bản sao danh sách chi tiêu.
func (s *Store) Finances() []models.Finance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Finance(nil), s.doc.Finances...)
}
