package seeders

import (
	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a small starter catalogue. Prices are in kobo.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalogue := []models.Product{
		{Name: "Milan Dining Chair", Type: models.TypeChair, Price: 15000_00, Description: "Upholstered dining chair with oak legs."},
		{Name: "Lagos Work Desk", Type: models.TypeTable, Price: 48000_00, Description: "Compact home office desk."},
		{Name: "Asokoro King Bed", Type: models.TypeBed, Price: 185000_00, Description: "King size bed frame with headboard."},
		{Name: "Ikoyi Wardrobe", Type: models.TypeCabinet, Price: 96000_00, Description: "Two-door wardrobe with mirror."},
		{Name: "Lekki Lounge Sofa", Type: models.TypeSofa, Price: 220000_00, Description: "Three-seater fabric sofa."},
		{Name: "Yaba Book Shelf", Type: models.TypeShelf, Price: 32000_00, Description: "Five-tier open shelf."},
	}
	for i := range catalogue {
		catalogue[i].Image = models.DefaultProductImage
	}

	return db.Create(&catalogue).Error
}
