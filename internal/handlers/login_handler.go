package handlers

import (
	"errors"
	"net/http"
	"time"

	"go-parfait-pos/internal/auth"
	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/models"
	"go-parfait-pos/internal/offline"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the user table when the store is reachable,
// and replays the offline credential cache when it is not. Every online
// success refreshes the cache slot so the next outage can be bridged.
func (a *API) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !database.Ping(a.DB) {
		a.Net.SetOnline(false)
		a.offlineLogin(c, input)
		return
	}
	a.Net.SetOnline(true)

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	admin := a.Cfg.IsAdmin(user.Email)
	token, err := auth.GenerateToken(a.Cfg.JWTSecret, user.ID, user.Email, admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	cached := offline.User{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
	// Cache failures must not break a working login; they only cost the
	// next outage its fallback.
	if err := a.Offline.SaveCredential(user.Email, input.Password, cached); err != nil {
		storeWarn("refresh offline credential cache", err)
	}
	if err := a.Offline.SaveIdentity(cached); err != nil {
		storeWarn("record last-known identity", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"email":   user.Email,
		"admin":   admin,
		"offline": false,
	})
}

// offlineLogin replays the cached credential. All failures collapse into
// one generic message so nothing leaks about which emails are cached.
func (a *API) offlineLogin(c *gin.Context, input LoginRequest) {
	user, err := a.Offline.Login(input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, offline.ErrUnavailable) {
			storeWarn("offline login", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": offline.ErrUnavailable.Error()})
		return
	}

	admin := a.Cfg.IsAdmin(user.Email)
	token, err := auth.GenerateToken(a.Cfg.JWTSecret, user.ID, user.Email, admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"email":   user.Email,
		"admin":   admin,
		"offline": true,
	})
}

// Logout clears both offline caches: the credential slot and the
// last-known identity.
func (a *API) Logout(c *gin.Context) {
	if err := a.Offline.Clear(); err != nil {
		storeError(c, "clear offline session cache", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports who is logged in, falling back to the last-known
// identity when only the offline cache remembers.
func (a *API) Session(c *gin.Context) {
	if u, ok := a.Offline.LastIdentity(); ok {
		c.JSON(http.StatusOK, gin.H{
			"email":  u.Email,
			"admin":  a.Cfg.IsAdmin(u.Email),
			"online": a.Net.Online(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": a.Net.Online()})
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
}

// Register creates a staff account. Only mounted when ALLOW_REGISTRATION
// is set; admin status still comes from the email allow-list, never from
// this endpoint.
func (a *API) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}
	if err := a.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}
