package models

type WOStatus string

const (
	WOOpen     WOStatus = "OPEN"
	WOProgress WOStatus = "PROGRESS"
	WODone     WOStatus = "DONE"
	WOVerified WOStatus = "VERIFIED"
)

func (s WOStatus) Valid() bool {
	switch s {
	case WOOpen, WOProgress, WODone, WOVerified:
		return true
	}
	return false
}

type WOPriority string

const (
	PriorityLow      WOPriority = "Low"
	PriorityMed      WOPriority = "Med"
	PriorityHigh     WOPriority = "High"
	PriorityCritical WOPriority = "Critical"
)

func (p WOPriority) Valid() bool {
	return p.Rank() >= 0
}

// Rank trả về thứ hạng để sort (Critical cao nhất); -1 nếu không hợp lệ.
func (p WOPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMed:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	}
	return -1
}

type WOType string

const (
	WORepair       WOType = "Repair"
	WOMaintenance  WOType = "Maintenance"
	WOInstallation WOType = "Installation"
)

func (t WOType) Valid() bool {
	switch t {
	case WORepair, WOMaintenance, WOInstallation:
		return true
	}
	return false
}

// PhotoSet chứa ảnh minh chứng trước/sau, lưu dạng data URL ngay trong document.
type PhotoSet struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

// WorkOrder là một phiếu công việc gắn với đúng một tài sản.
// Chỉ được thay đổi qua các thao tác chuyển trạng thái, không bao giờ bị xóa.
type WorkOrder struct {
	ID          string     `json:"id"`
	No          string     `json:"no"` // số phiếu dạng WO/YYMM/n
	AssetID     string     `json:"asset_id"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc"`
	Priority    WOPriority `json:"priority"`
	Type        WOType     `json:"type"`
	Status      WOStatus   `json:"status"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	CompletedAt string     `json:"completed_at,omitempty"`
	TechNotes   string     `json:"tech_notes"`
	Photos      PhotoSet   `json:"photos"`
}
