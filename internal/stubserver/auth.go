package stubserver

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tastebite/internal/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func Register(db *DB, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		db.mu.Lock()
		if _, exists := db.emails[email]; exists {
			db.mu.Unlock()
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"email": []string{"A user with that email already exists."}})
			return
		}
		user := &userRecord{
			User: models.User{
				ID:         db.seq(),
				Username:   strings.TrimSpace(req.Username),
				Email:      email,
				FullName:   strings.TrimSpace(req.FullName),
				DateJoined: time.Now().UTC().Format(time.RFC3339),
			},
			PasswordHash: string(hash),
		}
		db.users[user.ID] = user
		db.emails[email] = user.ID
		db.mu.Unlock()

		tokens, err := issueTokens(db, user, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"access":  tokens.Access,
			"refresh": tokens.Refresh,
			"user":    user.User,
		})
	}
}

func Login(db *DB, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		db.mu.Lock()
		userID, exists := db.emails[email]
		user := db.users[userID]
		db.mu.Unlock()

		if !exists {
			log.Println("[AUTH] [ERROR] login unknown email:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
			return
		}

		tokens, err := issueTokens(db, user, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"access":  tokens.Access,
			"refresh": tokens.Refresh,
			"user":    user.User,
		})
	}
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself stays valid until logout or expiry; the client only
// persists the access token from this response.
func Refresh(db *DB, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
			return
		}

		hash := hashToken(strings.TrimSpace(req.Refresh))

		db.mu.Lock()
		record, ok := db.refresh[hash]
		if !ok || record.Revoked {
			db.mu.Unlock()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		if time.Now().After(record.ExpiresAt) {
			record.Revoked = true
			db.mu.Unlock()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token expired"})
			return
		}
		user := db.users[record.UserID]
		db.mu.Unlock()

		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		access, err := issueAccessToken(user, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] refresh token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access": access})
	}
}

func Logout(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
			return
		}

		hash := hashToken(strings.TrimSpace(req.Refresh))

		db.mu.Lock()
		record, ok := db.refresh[hash]
		if ok && !record.Revoked {
			record.Revoked = true
		}
		db.mu.Unlock()

		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		log.Println("[AUTH] [INFO] refresh token revoked")
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make(map[string][]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := jsonField(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details[field] = append(details[field], "This field is required.")
			case "email":
				details[field] = append(details[field], "Enter a valid email address.")
			case "min":
				details[field] = append(details[field], "This field is too short.")
			default:
				details[field] = append(details[field], "This field is invalid.")
			}
		}
		c.JSON(http.StatusBadRequest, details)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func jsonField(field string) string {
	switch field {
	case "FullName":
		return "full_name"
	default:
		return strings.ToLower(field)
	}
}

type issuedTokens struct {
	Access  string
	Refresh string
}

func issueTokens(db *DB, user *userRecord, secret string, accessTTL, refreshTTL time.Duration) (*issuedTokens, error) {
	access, err := issueAccessToken(user, secret, accessTTL)
	if err != nil {
		return nil, err
	}

	plain := generateRefreshString()
	if plain == "" {
		return nil, errors.New("could not generate refresh token")
	}

	db.mu.Lock()
	db.refresh[hashToken(plain)] = &refreshRecord{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(refreshTTL),
	}
	db.mu.Unlock()

	return &issuedTokens{Access: access, Refresh: plain}, nil
}

func issueAccessToken(user *userRecord, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"exp":   time.Now().Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshString() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
