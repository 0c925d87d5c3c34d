package database

import (
	"strconv"

	"go-parfait-pos/internal/models"
	"go-parfait-pos/internal/report"

	"gorm.io/gorm"
)

// SalesForUser lists one user's sales, newest date first — the staff view.
func SalesForUser(db *gorm.DB, userID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Where("user_id = ?", userID).Order("date desc").Find(&sales).Error
	return sales, err
}

// AllSales lists every sale, newest date first — the admin view.
func AllSales(db *gorm.DB) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Order("date desc").Find(&sales).Error
	return sales, err
}

// ToRecords converts store rows into the aggregation engine's view.
func ToRecords(sales []models.Sale) []report.Record {
	records := make([]report.Record, len(sales))
	for i, s := range sales {
		records[i] = report.Record{
			ID:          s.ID,
			UserID:      strconv.FormatUint(uint64(s.UserID), 10),
			UserEmail:   s.UserEmail,
			Product:     s.Product,
			Flavor:      s.Flavor,
			Unit:        s.Unit,
			Price:       s.Price,
			Total:       s.Total,
			PaymentMode: s.PaymentMode,
			Date:        s.Date,
			Time:        s.Time,
			CreatedAt:   s.CreatedAt,
		}
	}
	return records
}
