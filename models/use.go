package models

import "time"

// Use records one read of a Url. Time is kept in unix milliseconds, which is
// also its wire format.
type Use struct {
	Id    int64 `gorm:"primaryKey" json:"id"`
	UrlId int64 `gorm:"index;not null" json:"urlId"`
	Time  int64 `gorm:"not null" json:"time"`
}

func NewUse(urlID int64, at time.Time) Use {
	return Use{UrlId: urlID, Time: at.UnixMilli()}
}
