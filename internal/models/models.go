package models

import (
	"strings"
	"time"
	"unicode"
)

// User - Staff member recording sales (admins are flagged by the email allow-list)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:120" json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Product - One sellable item in the catalog, with an ordered flavor list
type Product struct {
	ID      string   `gorm:"primaryKey;size:80" json:"id"` // slug derived from Name
	Name    string   `json:"name"`
	Flavors []Flavor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"flavors"`
}

// Flavor - A named variant of a product with its own price.
// Names are not guaranteed unique within a product; past sales keep their
// own copied flavor text, so catalog edits never rewrite history.
type Flavor struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID string  `gorm:"index;size:80" json:"product_id"`
	Position  int     `json:"position"` // order within the product
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Sale - One recorded transaction. Product/flavor/price are copied text,
// total is fixed at write time and never recomputed by the store.
type Sale struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint      `gorm:"index" json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Product     string    `json:"product"`
	Flavor      string    `json:"flavor"`
	Unit        int       `json:"unit"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	PaymentMode string    `gorm:"size:16" json:"paymentMode"`
	Date        string    `gorm:"size:10;index" json:"date"`    // YYYY-MM-DD
	Time        string    `gorm:"size:8" json:"time,omitempty"` // HH:MM:SS
	CreatedAt   time.Time `json:"createdAt"`
}

// PaymentModes is the fixed set of accepted payment channels.
var PaymentModes = []string{"POS", "Transfer", "Cash"}

func ValidPaymentMode(mode string) bool {
	for _, m := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// SlugID derives a product id from its display name ("Cup Cake" -> "cup-cake").
// Deterministic, so re-creating a product with the same name yields the same id.
func SlugID(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
