// internal/store/stats.go
package store

import (
	"fmt"
	"strings"
	"time"

	"techpartner-api-server/internal/models"
)

// Stats là ảnh chụp số liệu vận hành, dùng làm grounding context cho AI
// và cho dashboard.
type Stats struct {
	Agency         string   `json:"agency"`
	TotalAssets    int      `json:"total_assets"`
	BrokenAssets   int      `json:"broken_assets"`
	NeedService    int      `json:"need_service"`
	ActiveWO       int      `json:"active_wo"`
	RecentFinances []string `json:"recent_finances"`
	UrgentWO       []string `json:"urgent_wo"`
}

// Stats tính thống kê hiện tại: aset hỏng, cần servis (gồm cả quá hạn),
// phiếu đang mở, ba khoản chi gần nhất và ba phiếu ưu tiên cao nhất.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now()
	st := Stats{
		Agency:         s.doc.Meta.AgencyName,
		TotalAssets:    len(s.doc.Assets),
		RecentFinances: []string{},
		UrgentWO:       []string{},
	}
	if st.Agency == "" {
		st.Agency = "Instansi Umum"
	}

	for _, a := range s.doc.Assets {
		if a.Cond == models.CondBroken {
			st.BrokenAssets++
		}
		if a.Cond == models.CondNeedService || isOverdue(a.NextPMDate, today) {
			st.NeedService++
		}
	}

	for _, w := range s.doc.WorkOrders {
		if w.Status != models.WODone && w.Status != models.WOVerified {
			st.ActiveWO++
		}
		if (w.Priority == models.PriorityCritical || w.Priority == models.PriorityHigh) && len(st.UrgentWO) < 3 {
			st.UrgentWO = append(st.UrgentWO, w.Title)
		}
	}

	for i, f := range s.doc.Finances {
		if i >= 3 {
			break
		}
		st.RecentFinances = append(st.RecentFinances, fmt.Sprintf("%s: %s", f.Item, FormatRupiah(f.Cost)))
	}

	return st
}

// isOverdue kiểm tra một ngày (YYYY-MM-DD) đã qua hay chưa; ngày rỗng
// hoặc không parse được coi như chưa quá hạn.
func isOverdue(dateStr string, today time.Time) bool {
	if dateStr == "" {
		return false
	}
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false
	}
	return d.Before(today.Truncate(24 * time.Hour))
}

// FormatRupiah định dạng số tiền kiểu "Rp 1.250.000" (không số lẻ).
func FormatRupiah(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	if neg {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}
