package models

import "time"

// Session is the stored form of one client's accumulation state.
type Session struct {
	BaseUUIDModel
	RunCount   int       `gorm:"type:int;not null;default:0" json:"runCount"`
	StartDate  time.Time `gorm:"type:date;not null"          json:"startDate"`
	LastSeenAt time.Time `gorm:"not null;index"              json:"lastSeenAt"`
}

type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type Summary struct {
	Total      int         `json:"total"`
	Positive   int         `json:"positive"`
	Percentage float64     `json:"percentage"`
	ByDate     []DateCount `json:"byDate"`
}

type RecordsQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
