package models

import "time"

// Product represents a product in the store.
//
// Availability carries no column default: a GORM default would swallow an
// explicit false on insert, so the service applies ProductSchema's default.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Price        float64   `json:"price" gorm:"type:float"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the table name used by GORM.
func (Product) TableName() string {
	return ProductTable
}
