package models

// Condition mô tả tình trạng của một tài sản — giữ nguyên nhãn tiếng
// Indonesia vì chúng là giá trị dữ liệu, không phải text hiển thị.
type Condition string

const (
	CondNormal      Condition = "Normal"
	CondNeedService Condition = "Perlu Servis"
	CondBroken      Condition = "Rusak"
)

func (c Condition) Valid() bool {
	switch c {
	case CondNormal, CondNeedService, CondBroken:
		return true
	}
	return false
}

type Criticality string

const (
	CritLow  Criticality = "LOW"
	CritMed  Criticality = "MED"
	CritHigh Criticality = "HIGH"
)

func (c Criticality) Valid() bool {
	switch c {
	case CritLow, CritMed, CritHigh:
		return true
	}
	return false
}

// Asset là một tài sản vật lý. LocationID/TypeID tham chiếu master data;
// tham chiếu hỏng không bao giờ gây lỗi, chỉ rơi về nhãn mặc định.
type Asset struct {
	ID          string      `json:"id"`
	LocationID  string      `json:"location_id"`
	TypeID      string      `json:"type_id"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	Cond        Condition   `json:"cond"`
	Issue       string      `json:"issue"`
	Install     string      `json:"install"`      // YYYY-MM-DD
	Service     string      `json:"service"`      // last service date
	NextPMDate  string      `json:"next_pm_date"` // maintained by the PM engine
	Criticality Criticality `json:"criticality"`

	// Legacy fields from pre-v2 documents, consumed by the migration engine.
	LegacyCategory string `json:"category,omitempty"`
	LegacyLocation string `json:"location,omitempty"`
}
