package models

import "gorm.io/gorm"

// Furniture categories.
const (
	TypeChair   = "Chair"
	TypeTable   = "Table"
	TypeBed     = "Bed"
	TypeCabinet = "Cabinet"
	TypeSofa    = "Sofa"
	TypeShelf   = "Shelf"
	TypeOther   = "Other"
)

// ProductTypes lists every valid furniture category, used for validation
// and for the category filter on the catalogue.
var ProductTypes = []string{
	TypeChair, TypeTable, TypeBed, TypeCabinet, TypeSofa, TypeShelf, TypeOther,
}

// DefaultProductImage is used when a product has no uploaded image.
const DefaultProductImage = "no-image.jpg"

// Product represents a furniture item in the catalogue.
// Price is stored in minor currency units (kobo).
type Product struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Type        string `gorm:"size:50;not null;index"  json:"type"`
	Description string `gorm:"type:text"               json:"description"`
	Price       int64  `gorm:"not null;default:0"      json:"price"`
	Image       string `gorm:"size:255"                json:"image"`
	Likes       int    `gorm:"not null;default:0"      json:"likes"`
}

// ValidType reports whether t is a known furniture category.
func ValidType(t string) bool {
	for _, pt := range ProductTypes {
		if pt == t {
			return true
		}
	}
	return false
}
