package models

import "time"

type BannerType string

const (
	BannerSlider  BannerType = "slider"
	BannerProduct BannerType = "product"
	BannerSmall   BannerType = "small"
)

type Banner struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      BannerType `gorm:"type:VARCHAR(20);not null" json:"type"`
	Title     string     `json:"title"`
	ImageURL  string     `gorm:"not null" json:"image_url"`
	ImageKey  string     `json:"-"`
	Link      string     `json:"link"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
