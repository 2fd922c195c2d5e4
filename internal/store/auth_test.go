package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tastebite/internal/api"
	"tastebite/internal/storage"
)

func TestCheckAuthStatusRunsOnce(t *testing.T) {
	var userCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&userCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": 4, "email": "ana@example.com"})
	}))
	defer srv.Close()

	local := storage.NewMemory()
	local.SetTokens("access-1", "refresh-1")
	auth := NewAuth(api.New(srv.URL, 5*time.Second, local), local, nil)

	ctx := context.Background()
	auth.CheckAuthStatus(ctx)
	auth.CheckAuthStatus(ctx)
	auth.CheckAuthStatus(ctx)

	if got := atomic.LoadInt32(&userCalls); got != 1 {
		t.Fatalf("profile fetched %d times, want 1", got)
	}
	if !auth.IsAuthenticated() {
		t.Fatalf("state = %q, want authenticated", auth.State())
	}
	if user := auth.User(); user == nil || user.Email != "ana@example.com" {
		t.Fatalf("unexpected cached user: %+v", user)
	}
}

func TestCheckAuthStatusWithoutTokenSignsOut(t *testing.T) {
	env := newTestEnv(t)
	recorder := &sessionRecorder{}
	auth := NewAuth(env.client, env.local, recorder)

	auth.CheckAuthStatus(context.Background())

	if auth.State() != AuthSignedOut {
		t.Fatalf("state = %q, want unauthenticated", auth.State())
	}
	if len(recorder.ids) != 1 || recorder.ids[0] != 0 {
		t.Fatalf("listener notifications = %v, want [0]", recorder.ids)
	}
}

func TestCheckAuthStatusInvalidTokenClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.local.SetTokens("garbage", "")
	auth := NewAuth(env.client, env.local, nil)

	auth.CheckAuthStatus(context.Background())

	if auth.State() != AuthSignedOut {
		t.Fatalf("state = %q, want unauthenticated", auth.State())
	}
	if env.local.AccessToken() != "" {
		t.Fatalf("expected cleared access token, got %q", env.local.AccessToken())
	}
}

func TestLoginStoresSessionAndNotifiesFavorites(t *testing.T) {
	env := newTestEnv(t)
	user := env.signIn(t, "ana@example.com")
	env.local.ClearTokens()

	favorites := NewFavorites(env.client, env.local)
	auth := NewAuth(env.client, env.local, favorites)

	if err := auth.Login(context.Background(), "ana@example.com", "password123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if !auth.IsAuthenticated() {
		t.Fatalf("state = %q, want authenticated", auth.State())
	}
	if env.local.AccessToken() == "" || env.local.RefreshToken() == "" {
		t.Fatal("expected stored token pair after login")
	}
	if favorites.UserID() != user.ID {
		t.Fatalf("favorites scoped to user %d, want %d", favorites.UserID(), user.ID)
	}
}

func TestLoginRejectsInvalidEmailLocally(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuth(env.client, env.local, nil)

	if err := auth.Login(context.Background(), "not-an-email", "password123"); err == nil {
		t.Fatal("expected validation error")
	}
	if auth.Err() != "a valid email is required" {
		t.Fatalf("Err() = %q", auth.Err())
	}
	if auth.IsAuthenticated() {
		t.Fatal("did not expect authentication")
	}
}

func TestLoginFailureRecordsBackendMessage(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuth(env.client, env.local, nil)

	if err := auth.Login(context.Background(), "ghost@example.com", "password123"); err == nil {
		t.Fatal("expected login error")
	}
	if auth.Err() != "User not found" {
		t.Fatalf("Err() = %q, want User not found", auth.Err())
	}
	if env.local.AccessToken() != "" {
		t.Fatal("expected no stored tokens after failed login")
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	recorder := &sessionRecorder{}
	auth := NewAuth(env.client, env.local, recorder)

	input := api.RegisterInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "password123",
		FullName: "Ana Cruz",
	}
	if err := auth.Register(context.Background(), input); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if !auth.Success() {
		t.Fatal("expected success flag after registration")
	}
	if auth.IsAuthenticated() {
		t.Fatal("registration must not sign in")
	}
	if env.local.AccessToken() != "" || env.local.RefreshToken() != "" {
		t.Fatal("registration must not store tokens")
	}
	if len(recorder.ids) != 0 {
		t.Fatalf("listener notifications = %v, want none", recorder.ids)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuth(env.client, env.local, nil)

	input := api.RegisterInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "short",
		FullName: "Ana Cruz",
	}
	if err := auth.Register(context.Background(), input); err == nil {
		t.Fatal("expected validation error")
	}
	if auth.Err() != "password is too short" {
		t.Fatalf("Err() = %q", auth.Err())
	}
}

func TestUpdateProfilePicturePatchesCachedUser(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuth(env.client, env.local, nil)
	env.signIn(t, "ana@example.com")
	auth.CheckAuthStatus(context.Background())

	url := auth.UpdateProfilePicture(context.Background(), "me.png", strings.NewReader("png-bytes"))
	if auth.Err() != "" {
		t.Fatalf("unexpected error: %q", auth.Err())
	}
	if url != "/media/profile_pictures/me.png" {
		t.Fatalf("url = %q", url)
	}
	if user := auth.User(); user == nil || user.ProfilePicture != url {
		t.Fatalf("cached user not patched: %+v", user)
	}
}

func TestUpdateDietaryPreferencesReplacesProfile(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuth(env.client, env.local, nil)
	env.signIn(t, "ana@example.com")
	auth.CheckAuthStatus(context.Background())

	prefs := auth.User().DietaryPreferences
	prefs.Vegan = true
	auth.UpdateDietaryPreferences(context.Background(), prefs)

	if auth.Err() != "" {
		t.Fatalf("unexpected error: %q", auth.Err())
	}
	if user := auth.User(); !user.Vegan {
		t.Fatalf("vegan flag not set: %+v", user.DietaryPreferences)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	env := newTestEnv(t)
	favorites := NewFavorites(env.client, env.local)
	auth := NewAuth(env.client, env.local, favorites)

	env.signIn(t, "ana@example.com")
	auth.CheckAuthStatus(context.Background())
	if !auth.IsAuthenticated() {
		t.Fatalf("state = %q, want authenticated before logout", auth.State())
	}

	auth.Logout(context.Background())

	if auth.State() != AuthSignedOut {
		t.Fatalf("state = %q, want unauthenticated", auth.State())
	}
	if auth.User() != nil {
		t.Fatal("expected cached user cleared")
	}
	if env.local.AccessToken() != "" || env.local.RefreshToken() != "" {
		t.Fatal("expected cleared tokens")
	}
	if favorites.UserID() != 0 {
		t.Fatalf("favorites still scoped to user %d", favorites.UserID())
	}
	if _, ok := env.local.Favorites(); ok {
		t.Fatal("expected persisted favorites cleared")
	}
}
