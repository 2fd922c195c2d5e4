package stubserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

type profileUpdateRequest struct {
	Username    *string `json:"username"`
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func GetMe(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)

		db.mu.Lock()
		user, ok := db.users[userID]
		db.mu.Unlock()

		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, user.User)
	}
}

// UpdateProfile applies a partial update and answers with the full profile,
// which the client uses to replace its cached copy.
func UpdateProfile(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		user, ok := db.users[currentUserID(c)]
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if req.Username != nil {
			user.Username = strings.TrimSpace(*req.Username)
		}
		if req.FullName != nil {
			user.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" {
				c.JSON(http.StatusBadRequest, gin.H{"email": []string{"This field may not be blank."}})
				return
			}
			if other, exists := db.emails[email]; exists && other != user.ID {
				c.JSON(http.StatusBadRequest, gin.H{"email": []string{"A user with that email already exists."}})
				return
			}
			delete(db.emails, user.Email)
			user.Email = email
			db.emails[email] = user.ID
		}
		if req.PhoneNumber != nil {
			user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
		}

		c.JSON(http.StatusOK, user.User)
	}
}

// UpdateProfilePicture accepts a multipart upload. The stub does not keep the
// bytes; it only records a URL so the client flow can be exercised.
func UpdateProfilePicture(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("profile_picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		user, ok := db.users[currentUserID(c)]
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		user.ProfilePicture = "/media/profile_pictures/" + file.Filename
		log.Println("[PROFILE] [INFO] picture updated for:", user.Email)

		c.JSON(http.StatusOK, gin.H{
			"message":         "Profile picture updated successfully",
			"profile_picture": user.ProfilePicture,
		})
	}
}

func UpdateDietaryPreferences(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs models.DietaryPreferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		user, ok := db.users[currentUserID(c)]
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		user.DietaryPreferences = prefs
		c.JSON(http.StatusOK, user.User)
	}
}
