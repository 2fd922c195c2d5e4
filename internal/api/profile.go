package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"tastebite/internal/models"
)

// ProfileUpdate is a partial profile mutation; nil fields are left untouched
// by the backend.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.putJSON(ctx, "/profile/update/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfilePicture uploads a new picture as multipart form data and
// returns the URL the backend stored it under. The multipart body is buffered
// up front so the 401 retry can replay it.
func (c *Client) UpdateProfilePicture(ctx context.Context, filename string, picture io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("profile_picture", filename)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, picture); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	var out struct {
		Message        string `json:"message"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.do(ctx, http.MethodPut, "/profile/picture/", writer.FormDataContentType(), buf.Bytes(), &out); err != nil {
		return "", err
	}
	return out.ProfilePicture, nil
}

func (c *Client) UpdateDietaryPreferences(ctx context.Context, prefs models.DietaryPreferences) (*models.User, error) {
	var user models.User
	if err := c.putJSON(ctx, "/profile/dietary-preferences/", prefs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
