package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/live"
	"go-parfait-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- GET: full catalog, products with ordered flavors ---
func (a *API) GetCatalog(c *gin.Context) {
	products, err := database.Catalog(a.DB)
	if err != nil {
		storeError(c, "fetch catalog", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type ProductRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- POST: create product, id derived from the name ---
func (a *API) CreateProduct(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id := models.SlugID(input.Name)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name yields an empty id"})
		return
	}

	var existing models.Product
	if err := a.DB.First(&existing, "id = ?", id).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this name already exists"})
		return
	}

	product := models.Product{ID: id, Name: input.Name}
	if err := a.DB.Create(&product).Error; err != nil {
		storeError(c, "create product", err)
		return
	}

	a.publishCatalog("create", id)
	c.JSON(http.StatusCreated, product)
}

// --- PUT: rename product (the id stays; sales keep their copied text) ---
func (a *API) RenameProduct(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id := c.Param("id")
	result := a.DB.Model(&models.Product{}).Where("id = ?", id).Update("name", input.Name)
	if result.Error != nil {
		storeError(c, "rename product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	a.publishCatalog("update", id)
	c.JSON(http.StatusOK, gin.H{"message": "Product renamed"})
}

// --- DELETE: remove product and, implicitly, its flavors ---
// Past sale records are untouched: they carry their own product/flavor text.
func (a *API) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Flavor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		storeError(c, "delete product", err)
		return
	}

	a.publishCatalog("delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type FlavorRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// --- POST: append a flavor ---
// Reads the whole product, appends in memory, writes the whole flavor list
// back. Concurrent edits race with last-writer-wins.
func (a *API) AddFlavor(c *gin.Context) {
	var input FlavorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	a.mutateFlavors(c, func(flavors []models.Flavor) ([]models.Flavor, bool) {
		return append(flavors, models.Flavor{Name: input.Name, Price: input.Price}), true
	})
}

// --- PUT: edit one flavor by its position in the list ---
func (a *API) UpdateFlavor(c *gin.Context) {
	var input FlavorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flavor index"})
		return
	}

	a.mutateFlavors(c, func(flavors []models.Flavor) ([]models.Flavor, bool) {
		if index < 0 || index >= len(flavors) {
			return nil, false
		}
		flavors[index].Name = input.Name
		flavors[index].Price = input.Price
		return flavors, true
	})
}

// --- DELETE: remove one flavor by position ---
func (a *API) RemoveFlavor(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flavor index"})
		return
	}

	a.mutateFlavors(c, func(flavors []models.Flavor) ([]models.Flavor, bool) {
		if index < 0 || index >= len(flavors) {
			return nil, false
		}
		return append(flavors[:index], flavors[index+1:]...), true
	})
}

// mutateFlavors runs the read-modify-write-whole-list cycle shared by all
// flavor edits.
func (a *API) mutateFlavors(c *gin.Context, mutate func([]models.Flavor) ([]models.Flavor, bool)) {
	id := c.Param("id")

	product, err := database.ProductByID(a.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		storeError(c, "fetch product", err)
		return
	}

	flavors, ok := mutate(product.Flavors)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flavor not found"})
		return
	}

	if err := database.ReplaceFlavors(a.DB, id, flavors); err != nil {
		storeError(c, "update flavors", err)
		return
	}

	a.publishCatalog("update", id)
	product, err = database.ProductByID(a.DB, id)
	if err != nil {
		storeError(c, "fetch product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (a *API) publishCatalog(action, id string) {
	a.Live.Publish(live.Event{Collection: "catalog", Action: action, ID: id, At: time.Now()})
}
