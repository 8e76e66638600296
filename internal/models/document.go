package models

// SchemaVersion là phiên bản schema hiện tại của Document.
// Migration chỉ chạy tiến (meta.version < SchemaVersion).
const SchemaVersion = 2

const (
	// FallbackLocationName dùng khi location_id không resolve được.
	FallbackLocationName = "Lokasi Umum"
	// FallbackTypeName dùng khi type_id không resolve được.
	FallbackTypeName = "Lain-lain"
)

type Meta struct {
	Version     int    `json:"version"`
	AgencyName  string `json:"agency_name"`
	LastSync    string `json:"last_sync,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Document là toàn bộ trạng thái được đồng bộ: một file JSON duy nhất
// trên remote store. Mọi entity đều thuộc sở hữu của Document.
type Document struct {
	Meta       Meta        `json:"meta"`
	Master     Master      `json:"master"`
	Assets     []Asset     `json:"assets"`
	WorkOrders []WorkOrder `json:"work_orders"`
	Activities []Activity  `json:"activities"`
	Finances   []Finance   `json:"finances"`
}

// DefaultDocument trả về document khởi tạo với master data mặc định
// của đơn vị kỹ thuật: một SITE gốc và các khu vực/loại tài sản chuẩn.
func DefaultDocument() Document {
	return Document{
		Meta: Meta{
			Version:    SchemaVersion,
			AgencyName: "UNIT PEMELIHARAAN TEKNIS",
		},
		Master: Master{
			Locations: []Location{
				{ID: "loc_root", Name: "Kompleks Kantor", Type: LocSite},
				{ID: "loc_1", Name: "Gedung Utama - Lantai 1", Type: LocArea, ParentID: "loc_root"},
				{ID: "loc_2", Name: "Gedung Utama - Lantai 2", Type: LocArea, ParentID: "loc_root"},
				{ID: "loc_3", Name: "Server Room", Type: LocCritical, ParentID: "loc_root"},
				{ID: "loc_4", Name: "Area Parkir & Eksternal", Type: LocArea, ParentID: "loc_root"},
			},
			AssetTypes: []AssetType{
				{ID: "type_ac", Name: "Air Conditioner (AC)", PMInterval: 90},
				{ID: "type_ups", Name: "UPS & Kelistrikan", PMInterval: 180},
				{ID: "type_network", Name: "Perangkat Jaringan", PMInterval: 360},
				{ID: "type_light", Name: "Penerangan / Lampu", PMInterval: 0}, // 0 = no PM
			},
		},
		Assets:     []Asset{},
		WorkOrders: []WorkOrder{},
		Activities: []Activity{},
		Finances:   []Finance{},
	}
}

// Clone tạo bản sao sâu, dùng cho snapshot trước khi serialize/push.
func (d Document) Clone() Document {
	out := d

	out.Master.Locations = append([]Location(nil), d.Master.Locations...)
	out.Master.AssetTypes = append([]AssetType(nil), d.Master.AssetTypes...)
	out.Assets = append([]Asset(nil), d.Assets...)
	out.Activities = append([]Activity(nil), d.Activities...)
	out.Finances = append([]Finance(nil), d.Finances...)

	out.WorkOrders = make([]WorkOrder, len(d.WorkOrders))
	for i, w := range d.WorkOrders {
		w.Photos.Before = append([]string(nil), w.Photos.Before...)
		w.Photos.After = append([]string(nil), w.Photos.After...)
		out.WorkOrders[i] = w
	}

	return out
}

// EnsureShape thay các slice nil bằng slice rỗng để JSON không bao giờ
// chứa null ở các trường mảng — các client cũ không chịu được null.
func (d *Document) EnsureShape() {
	if d.Master.Locations == nil {
		d.Master.Locations = []Location{}
	}
	if d.Master.AssetTypes == nil {
		d.Master.AssetTypes = []AssetType{}
	}
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	if d.WorkOrders == nil {
		d.WorkOrders = []WorkOrder{}
	}
	for i := range d.WorkOrders {
		if d.WorkOrders[i].Photos.Before == nil {
			d.WorkOrders[i].Photos.Before = []string{}
		}
		if d.WorkOrders[i].Photos.After == nil {
			d.WorkOrders[i].Photos.After = []string{}
		}
	}
	if d.Activities == nil {
		d.Activities = []Activity{}
	}
	if d.Finances == nil {
		d.Finances = []Finance{}
	}
}

// Sanitize đưa các giá trị enum lạ (typo từ document cũ hoặc sửa tay trên
// remote) về giá trị an toàn, trả về số trường đã phải sửa.
func (d *Document) Sanitize() int {
	fixed := 0
	for i := range d.Assets {
		if !d.Assets[i].Cond.Valid() {
			d.Assets[i].Cond = CondNormal
			fixed++
		}
		if d.Assets[i].Criticality != "" && !d.Assets[i].Criticality.Valid() {
			d.Assets[i].Criticality = CritMed
			fixed++
		}
	}
	for i := range d.WorkOrders {
		if !d.WorkOrders[i].Status.Valid() {
			d.WorkOrders[i].Status = WOOpen
			fixed++
		}
		if !d.WorkOrders[i].Priority.Valid() {
			d.WorkOrders[i].Priority = PriorityMed
			fixed++
		}
		if !d.WorkOrders[i].Type.Valid() {
			d.WorkOrders[i].Type = WORepair
			fixed++
		}
	}
	for i := range d.Master.Locations {
		if !d.Master.Locations[i].Type.Valid() {
			d.Master.Locations[i].Type = LocRoom
			fixed++
		}
	}
	return fixed
}
