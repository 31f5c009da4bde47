package models

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Duration    int    `json:"duration"` // in minutes
	Category    string `gorm:"default:'General'" json:"category"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}
