package models

// Activity là một dòng nhật ký công việc, chỉ append, mới nhất đứng đầu.
type Activity struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Tag   string `json:"tag"`
	Desc  string `json:"desc"`
	Img   string `json:"img,omitempty"` // data URL, optional
	Date  string `json:"date"`          // YYYY-MM-DD
}
