package store

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tastebite/internal/api"
	"tastebite/internal/models"
	"tastebite/internal/storage"
	"tastebite/internal/stubserver"
)

// testEnv wires the stores against an in-memory backend and in-memory
// local storage, the way main wires them against the real ones.
type testEnv struct {
	client *api.Client
	local  *storage.Store
	db     *stubserver.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := stubserver.NewDB()
	router := stubserver.Router(db, stubserver.Options{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	local := storage.NewMemory()
	return &testEnv{
		client: api.New(srv.URL, 5*time.Second, local),
		local:  local,
		db:     db,
	}
}

// signIn registers an account and authenticates the env's client with it.
func (env *testEnv) signIn(t *testing.T, email string) models.User {
	t.Helper()
	ctx := context.Background()

	input := api.RegisterInput{
		Username: "ana",
		Email:    email,
		Password: "password123",
		FullName: "Ana Cruz",
	}
	if _, err := env.client.Register(ctx, input); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := env.client.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	env.local.SetTokens(session.Access, session.Refresh)
	return session.User
}

func (env *testEnv) addProduct(name, category string, price float64) models.Product {
	return env.db.AddProduct(models.Product{
		Name:      name,
		Category:  category,
		Price:     price,
		Available: true,
	})
}

// sessionRecorder captures SessionChanged notifications.
type sessionRecorder struct {
	ids []int64
}

func (r *sessionRecorder) SessionChanged(_ context.Context, userID int64) {
	r.ids = append(r.ids, userID)
}
