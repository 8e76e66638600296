// internal/store/migrate.go
package store

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"techpartner-api-server/internal/models"
)

// legacyCategoryTypes ánh xạ trường category tự do của document v1
// sang type_id chuẩn. Không khớp thì rơi về genericTypeID.
var legacyCategoryTypes = map[string]string{
	"ac":          "type_ac",
	"pendingin":   "type_ac",
	"ups":         "type_ups",
	"listrik":     "type_ups",
	"kelistrikan": "type_ups",
	"jaringan":    "type_network",
	"network":     "type_network",
	"lampu":       "type_light",
	"penerangan":  "type_light",
}

const (
	genericTypeID  = "type_other"
	rootLocationID = "loc_root"
)

// migrateLocked nâng một Document cũ lên schema hiện tại. Chạy nhiều lần
// vô hại: đã đúng version thì không đụng gì cả. Không bao giờ trả lỗi —
// tham chiếu không resolve được thì sinh entity mặc định thay vì từ chối
// document (ưu tiên giữ dữ liệu hơn là validate chặt).
func (s *Store) migrateLocked() bool {
	if s.doc.Meta.Version >= models.SchemaVersion {
		return false
	}

	s.doc.EnsureShape()

	// Document quá cũ có thể chưa có site gốc cho cây vị trí.
	if _, ok := s.findLocationID(rootLocationID); !ok {
		s.doc.Master.Locations = append(s.doc.Master.Locations, models.Location{
			ID:   rootLocationID,
			Name: "Kompleks Kantor",
			Type: models.LocSite,
		})
	}

	// Index tên vị trí (case-insensitive) để tên trùng nhau không sinh
	// ra nhiều location mới.
	byName := make(map[string]string, len(s.doc.Master.Locations))
	for _, l := range s.doc.Master.Locations {
		byName[strings.ToLower(strings.TrimSpace(l.Name))] = l.ID
	}

	for i := range s.doc.Assets {
		a := &s.doc.Assets[i]

		if a.TypeID == "" && a.LegacyCategory != "" {
			key := strings.ToLower(strings.TrimSpace(a.LegacyCategory))
			typeID, ok := legacyCategoryTypes[key]
			if !ok {
				typeID = genericTypeID
				s.ensureGenericType()
			}
			a.TypeID = typeID
		}
		a.LegacyCategory = ""

		if a.LocationID == "" && a.LegacyLocation != "" {
			name := strings.TrimSpace(a.LegacyLocation)
			key := strings.ToLower(name)
			locID, ok := byName[key]
			if !ok {
				locID = "loc_" + newID()
				s.doc.Master.Locations = append(s.doc.Master.Locations, models.Location{
					ID:       locID,
					Name:     name,
					Type:     models.LocRoom,
					ParentID: rootLocationID,
				})
				byName[key] = locID
				s.logger.Info("Migration synthesized location", zap.String("name", name))
			}
			a.LocationID = locID
		}
		a.LegacyLocation = ""

		// TODO: derive next_pm_date from the asset type's pm_interval once
		// migration learns to look it up; 90 days matches the engine default.
		if a.NextPMDate == "" && a.Service != "" {
			if serviced, err := time.Parse(dateLayout, a.Service); err == nil {
				a.NextPMDate = serviced.AddDate(0, 0, defaultPMInterval).Format(dateLayout)
			}
		}

		if a.Criticality == "" {
			a.Criticality = models.CritMed
		}
	}

	from := s.doc.Meta.Version
	s.doc.Meta.Version = models.SchemaVersion
	s.doc.Meta.LastUpdated = s.now().Format(time.RFC3339)
	s.logger.Info("Document migrated",
		zap.Int("from_version", from),
		zap.Int("to_version", models.SchemaVersion),
	)
	return true
}

func (s *Store) findLocationID(id string) (models.Location, bool) {
	for _, l := range s.doc.Master.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return models.Location{}, false
}

func (s *Store) ensureGenericType() {
	for _, t := range s.doc.Master.AssetTypes {
		if t.ID == genericTypeID {
			return
		}
	}
	s.doc.Master.AssetTypes = append(s.doc.Master.AssetTypes, models.AssetType{
		ID:         genericTypeID,
		Name:       models.FallbackTypeName,
		PMInterval: 0,
	})
}
