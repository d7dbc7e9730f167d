package models

import "time"

// PageView counts successful GET requests per path per day. Stats report
// the sum over today's rows.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       time.Time `gorm:"uniqueIndex:idx_page_view_day_path;not null" json:"day"`
	Path      string    `gorm:"size:255;not null;uniqueIndex:idx_page_view_day_path" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}
