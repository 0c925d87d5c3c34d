package database

import (
	"go-parfait-pos/internal/models"

	"gorm.io/gorm"
)

// Catalog reads every product with its flavors in position order.
func Catalog(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.Preload("Flavors", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Find(&products).Error
	return products, err
}

// ProductByID loads one product and its ordered flavor list.
func ProductByID(db *gorm.DB, id string) (models.Product, error) {
	var p models.Product
	err := db.Preload("Flavors", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).First(&p, "id = ?", id).Error
	return p, err
}

// ReplaceFlavors writes a product's whole flavor list back in one shot.
// This is a deliberate last-writer-wins replace: two admins editing the
// same product race, and the later write sticks. No compare-and-swap.
func ReplaceFlavors(db *gorm.DB, productID string, flavors []models.Flavor) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.Flavor{}).Error; err != nil {
			return err
		}
		for i := range flavors {
			flavors[i].ID = 0
			flavors[i].ProductID = productID
			flavors[i].Position = i
		}
		if len(flavors) == 0 {
			return nil
		}
		return tx.Create(&flavors).Error
	})
}
