package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-parfait-pos/internal/confirm"
	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/live"
	"go-parfait-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- GET: sale listing ---
// Staff see their own records; admins see the unpartitioned set.
func (a *API) ListSales(c *gin.Context) {
	var (
		sales []models.Sale
		err   error
	)
	if isAdmin(c) {
		sales, err = database.AllSales(a.DB)
	} else {
		sales, err = database.SalesForUser(a.DB, currentUserID(c))
	}
	if err != nil {
		storeError(c, "fetch sales", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

type SaleRequest struct {
	Product     string  `json:"product" binding:"required"`
	Flavor      string  `json:"flavor" binding:"required"`
	Unit        int     `json:"unit" binding:"required"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	PaymentMode string  `json:"paymentMode" binding:"required"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
}

func (r SaleRequest) validate() error {
	if r.Unit < 1 {
		return errors.New("unit must be at least 1")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	if !models.ValidPaymentMode(r.PaymentMode) {
		return fmt.Errorf("payment mode must be one of %v", models.PaymentModes)
	}
	if r.Total != 0 && r.Total != r.Price*float64(r.Unit) {
		return errors.New("total must equal price times unit")
	}
	return nil
}

// --- POST: record a sale ---
// The store assigns the id and creation timestamp; total is fixed here and
// never recomputed afterwards.
func (a *API) CreateSale(c *gin.Context) {
	var input SaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := input.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	sale := models.Sale{
		ID:          uuid.NewString(),
		UserID:      currentUserID(c),
		UserEmail:   currentEmail(c),
		Product:     input.Product,
		Flavor:      input.Flavor,
		Unit:        input.Unit,
		Price:       input.Price,
		Total:       input.Price * float64(input.Unit),
		PaymentMode: input.PaymentMode,
		Date:        input.Date,
		Time:        input.Time,
		CreatedAt:   now,
	}
	if sale.Date == "" {
		sale.Date = now.Format("2006-01-02")
	}
	if sale.Time == "" {
		sale.Time = now.Format("15:04:05")
	}

	if err := a.DB.Create(&sale).Error; err != nil {
		storeError(c, "create sale record", err)
		return
	}

	a.publishSale("create", sale.ID)
	c.JSON(http.StatusCreated, sale)
}

// --- PUT: edit a sale in place ---
// Everything but the id and the owning user may change. Staff may edit
// their own records, admins anyone's.
func (a *API) UpdateSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	if err := a.DB.First(&sale, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	if !isAdmin(c) && sale.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		return
	}

	var input SaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := input.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale.Product = input.Product
	sale.Flavor = input.Flavor
	sale.Unit = input.Unit
	sale.Price = input.Price
	sale.Total = input.Price * float64(input.Unit)
	sale.PaymentMode = input.PaymentMode
	if input.Date != "" {
		sale.Date = input.Date
	}
	if input.Time != "" {
		sale.Time = input.Time
	}

	if err := a.DB.Save(&sale).Error; err != nil {
		storeError(c, "update sale record", err)
		return
	}

	a.publishSale("update", sale.ID)
	c.JSON(http.StatusOK, sale)
}

// --- DELETE: first step of the two-step delete ---
// Enqueues a confirmation prompt; nothing is removed yet.
func (a *API) RequestDeleteSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	if err := a.DB.First(&sale, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	prompt := a.Confirm.Enqueue(
		fmt.Sprintf("Delete the %s sale of %d x %s (%s)?", sale.Date, sale.Unit, sale.Flavor, sale.Product),
		sale.ID,
	)
	c.JSON(http.StatusAccepted, gin.H{
		"token":   prompt.Token,
		"message": prompt.Message,
	})
}

type ConfirmRequest struct {
	Token  string `json:"token" binding:"required"`
	Accept *bool  `json:"accept" binding:"required"`
}

// --- POST: resolve the delete prompt ---
func (a *API) ConfirmDeleteSale(c *gin.Context) {
	id := c.Param("id")

	var input ConfirmRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	payload, accepted, err := a.Confirm.Resolve(input.Token, *input.Accept)
	if err != nil {
		if errors.Is(err, confirm.ErrUnknownToken) {
			c.JSON(http.StatusGone, gin.H{"error": "Confirmation expired, request the delete again"})
			return
		}
		storeError(c, "resolve confirmation", err)
		return
	}
	if payload != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation token does not match this sale"})
		return
	}
	if !accepted {
		c.JSON(http.StatusOK, gin.H{"message": "Delete cancelled"})
		return
	}

	result := a.DB.Delete(&models.Sale{}, "id = ?", id)
	if result.Error != nil {
		storeError(c, "delete sale record", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	a.publishSale("delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}

func (a *API) publishSale(action, id string) {
	a.Live.Publish(live.Event{Collection: "sales", Action: action, ID: id, At: time.Now()})
}

// --- GET: change stream ---
// Server-sent events; one event per store mutation, no record data. The
// client re-fetches and re-derives on every tick. The cancellation handle
// from Subscribe is released when the client goes away.
func (a *API) StreamEvents(c *gin.Context) {
	events, cancel := a.Live.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", e)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
