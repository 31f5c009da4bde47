package models

// PaymentMethod maps a numeric method id to a human label ("Dinheiro",
// "Cartão de crédito", "Pix", ...).
type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}
