package models

type Url struct {
	Id   int64  `gorm:"primaryKey" json:"id"`
	Href string `gorm:"not null" json:"href"`
}
