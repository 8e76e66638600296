package models

type LocationType string

const (
	LocSite     LocationType = "SITE"
	LocArea     LocationType = "AREA"
	LocRoom     LocationType = "ROOM"
	LocCritical LocationType = "CRITICAL"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocSite, LocArea, LocRoom, LocCritical:
		return true
	}
	return false
}

// Location là một nút trong cây vị trí (SITE > AREA > ROOM).
// ParentID rỗng nghĩa là nút gốc.
type Location struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     LocationType `json:"type"`
	ParentID string       `json:"parent_id,omitempty"`
}

// AssetType định nghĩa một loại tài sản cùng chu kỳ bảo trì định kỳ.
// PMInterval = 0 nghĩa là loại này không có lịch PM.
type AssetType struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PMInterval int    `json:"pm_interval"` // days
}

// Master gom các bảng tra cứu dùng chung cho dropdown, filter và resolve tên.
type Master struct {
	Locations  []Location  `json:"locations"`
	AssetTypes []AssetType `json:"asset_types"`
}
