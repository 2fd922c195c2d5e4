package stubserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewDB()
	router := Router(db, Options{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, db
}

func postJSON(t *testing.T, srv *httptest.Server, path, bearer string, body any) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, buf.Bytes()
}

func registerUser(t *testing.T, srv *httptest.Server, email string) (access, refresh string, user models.User) {
	t.Helper()
	resp, body := postJSON(t, srv, "/register/", "", map[string]string{
		"username":  "ana",
		"email":     email,
		"password":  "password123",
		"full_name": "Ana Cruz",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.StatusCode, body)
	}
	var out struct {
		Access  string      `json:"access"`
		Refresh string      `json:"refresh"`
		User    models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return out.Access, out.Refresh, out.User
}

func TestRegisterValidationErrorShape(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv, "/register/", "", map[string]string{
		"username": "ana",
		"password": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var details map[string][]string
	if err := json.Unmarshal(body, &details); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, body)
	}
	if got := details["email"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("email errors = %v", got)
	}
	if got := details["password"]; len(got) != 1 || got[0] != "This field is too short." {
		t.Fatalf("password errors = %v", got)
	}
	if got := details["full_name"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("full_name errors = %v", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "ana@example.com")

	resp, body := postJSON(t, srv, "/register/", "", map[string]string{
		"username":  "ana2",
		"email":     "ana@example.com",
		"password":  "password123",
		"full_name": "Ana Cruz",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var details map[string][]string
	if err := json.Unmarshal(body, &details); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, body)
	}
	if got := details["email"]; len(got) != 1 || got[0] != "A user with that email already exists." {
		t.Fatalf("email errors = %v", got)
	}
}

func TestLoginErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "ana@example.com")

	resp, body := postJSON(t, srv, "/login/", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil || out["error"] != "User not found" {
		t.Fatalf("body = %s", body)
	}

	resp, body = postJSON(t, srv, "/login/", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &out); err != nil || out["error"] != "Invalid password" {
		t.Fatalf("body = %s", body)
	}
}

func TestRefreshAndLogoutFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	access, refresh, _ := registerUser(t, srv, "ana@example.com")

	resp, body := postJSON(t, srv, "/token/refresh/", "", map[string]string{"refresh": refresh})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", resp.StatusCode, body)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil || out["access"] == "" {
		t.Fatalf("refresh body = %s", body)
	}

	resp, body = postJSON(t, srv, "/logout/", access, map[string]string{"refresh": refresh})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, body %s", resp.StatusCode, body)
	}

	// A revoked refresh token must stop working.
	resp, _ = postJSON(t, srv, "/token/refresh/", "", map[string]string{"refresh": refresh})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh after logout status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/user/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestFavoriteToggleStatuses(t *testing.T) {
	srv, db := newTestServer(t)
	access, _, _ := registerUser(t, srv, "ana@example.com")
	product := db.AddProduct(models.Product{Name: "Turon", Category: "MERIENDA", Price: 2.50, Available: true})

	path := fmt.Sprintf("/favorites/toggle/%d/", product.ID)

	resp, body := postJSON(t, srv, path, access, struct{}{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first toggle status = %d, body %s", resp.StatusCode, body)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil || out["status"] != "added to favorites" {
		t.Fatalf("first toggle body = %s", body)
	}

	resp, body = postJSON(t, srv, path, access, struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second toggle status = %d, body %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &out); err != nil || out["status"] != "removed from favorites" {
		t.Fatalf("second toggle body = %s", body)
	}

	resp, body = postJSON(t, srv, "/favorites/toggle/999/", access, struct{}{})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product toggle status = %d, body %s", resp.StatusCode, body)
	}
}

func TestProfilePartialUpdate(t *testing.T) {
	srv, _ := newTestServer(t)
	access, _, _ := registerUser(t, srv, "ana@example.com")

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/profile/update/",
		bytes.NewReader([]byte(`{"phone_number": "0917 123 4567"}`)))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if user.PhoneNumber != "0917 123 4567" {
		t.Fatalf("phone = %q", user.PhoneNumber)
	}
	if user.FullName != "Ana Cruz" {
		t.Fatalf("full name changed unexpectedly: %q", user.FullName)
	}
}
