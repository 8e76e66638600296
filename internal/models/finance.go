package models

// Finance ghi nhận một khoản chi. Cost tính theo đơn vị tiền nhỏ nhất
// (Rupiah không có số lẻ), không bao giờ âm.
type Finance struct {
	ID   string `json:"id"`
	Item string `json:"item"`
	Cost int64  `json:"cost"`
	Date string `json:"date"`
	Img  string `json:"img,omitempty"`
}
