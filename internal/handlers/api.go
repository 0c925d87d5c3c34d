package handlers

import (
	"log"
	"net/http"

	"go-parfait-pos/internal/config"
	"go-parfait-pos/internal/confirm"
	"go-parfait-pos/internal/live"
	"go-parfait-pos/internal/offline"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API carries every dependency the handlers need. One instance is built in
// main and passed by reference; there is no package-level state.
type API struct {
	Cfg     config.Config
	DB      *gorm.DB
	Offline *offline.Store
	Net     *offline.Monitor
	Confirm *confirm.Queue
	Live    *live.Broker
}

func New(cfg config.Config, db *gorm.DB, store *offline.Store, net *offline.Monitor, queue *confirm.Queue, broker *live.Broker) *API {
	return &API{
		Cfg:     cfg,
		DB:      db,
		Offline: store,
		Net:     net,
		Confirm: queue,
		Live:    broker,
	}
}

// storeError logs a read/write failure and sends the generic toast payload.
// The operation is abandoned; there is no retry.
func storeError(c *gin.Context, action string, err error) {
	log.Printf("store %s failed: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}

// storeWarn logs a non-fatal side-channel failure without touching the
// response.
func storeWarn(action string, err error) {
	log.Printf("warning: %s failed: %v", action, err)
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}

func currentEmail(c *gin.Context) string {
	return c.MustGet("email").(string)
}

func isAdmin(c *gin.Context) bool {
	admin, _ := c.Get("admin")
	return admin == true
}
