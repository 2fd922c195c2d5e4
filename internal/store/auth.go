package store

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tastebite/internal/api"
	"tastebite/internal/models"
	"tastebite/internal/storage"
)

// AuthState is the session state machine: unchecked -> checking ->
// authenticated or unauthenticated. Explicit login and logout set the state
// directly; only CheckAuthStatus is guarded against re-running.
type AuthState string

const (
	AuthUnchecked AuthState = "unchecked"
	AuthChecking  AuthState = "checking"
	AuthSignedIn  AuthState = "authenticated"
	AuthSignedOut AuthState = "unauthenticated"
)

// SessionListener is notified whenever the signed-in user changes. A zero
// user id means signed out. The favorites store implements this so it can
// scope its list to the active user without reaching into the auth store.
type SessionListener interface {
	SessionChanged(ctx context.Context, userID int64)
}

type Auth struct {
	mu       sync.Mutex
	api      *api.Client
	tokens   *storage.Store
	listener SessionListener
	validate *validator.Validate

	state   AuthState
	user    *models.User
	loading bool
	checked bool
	success bool
	err     string
}

func NewAuth(client *api.Client, tokens *storage.Store, listener SessionListener) *Auth {
	return &Auth{
		api:      client,
		tokens:   tokens,
		listener: listener,
		validate: validator.New(),
		state:    AuthUnchecked,
	}
}

func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Auth) IsAuthenticated() bool {
	return a.State() == AuthSignedIn
}

// User returns a copy of the cached profile, or nil when signed out.
func (a *Auth) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	user := *a.user
	return &user
}

func (a *Auth) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Success reports whether the last registration completed.
func (a *Auth) Success() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.success
}

func (a *Auth) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Auth) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = ""
}

// CheckAuthStatus resolves the session once per application run. Repeated
// calls after the first resolution (or while a check is in flight) are no-ops;
// login and logout bypass this guard.
func (a *Auth) CheckAuthStatus(ctx context.Context) {
	a.mu.Lock()
	if a.checked || a.state == AuthChecking {
		a.mu.Unlock()
		return
	}
	if a.tokens.AccessToken() == "" {
		a.state = AuthSignedOut
		a.checked = true
		a.user = nil
		a.mu.Unlock()
		a.notify(ctx, 0)
		return
	}
	a.state = AuthChecking
	a.loading = true
	a.mu.Unlock()

	user, err := a.api.CurrentUser(ctx)

	a.mu.Lock()
	a.loading = false
	a.checked = true
	if err != nil {
		log.Println("[AUTH] [ERROR] auth check failed, clearing session:", err)
		a.tokens.ClearTokens()
		a.state = AuthSignedOut
		a.user = nil
		a.mu.Unlock()
		a.notify(ctx, 0)
		return
	}
	a.user = user
	a.state = AuthSignedIn
	a.mu.Unlock()

	log.Println("[AUTH] [INFO] session restored for:", user.Email)
	a.notify(ctx, user.ID)
}

// Login authenticates, stores the token pair and profile, and announces the
// new user id. Unlike the other actions it both records and returns the
// error so the caller can decide on redirect timing.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	if err := a.validate.Var(email, "required,email"); err != nil {
		return a.reject("a valid email is required")
	}
	if err := a.validate.Var(password, "required"); err != nil {
		return a.reject("password is required")
	}

	a.begin()
	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.mu.Lock()
		a.loading = false
		a.checked = true
		a.err = displayError(err, "Login failed. Please try again.")
		a.mu.Unlock()
		log.Println("[AUTH] [ERROR] login failed:", err)
		return err
	}

	a.tokens.SetTokens(session.Access, session.Refresh)

	a.mu.Lock()
	user := session.User
	a.user = &user
	a.state = AuthSignedIn
	a.checked = true
	a.loading = false
	a.mu.Unlock()

	log.Println("[AUTH] [INFO] login succeeded:", user.Email)
	a.notify(ctx, user.ID)
	return nil
}

// Register creates an account without signing in; the session the backend
// returns is deliberately discarded. The error is propagated like Login's.
func (a *Auth) Register(ctx context.Context, input api.RegisterInput) error {
	if err := a.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return a.reject(registerFieldMessage(fieldErrs[0]))
		}
		return a.reject("invalid registration details")
	}

	a.begin()
	a.mu.Lock()
	a.success = false
	a.mu.Unlock()

	if _, err := a.api.Register(ctx, input); err != nil {
		a.mu.Lock()
		a.loading = false
		a.err = displayError(err, "Registration failed. Please try again.")
		a.mu.Unlock()
		log.Println("[AUTH] [ERROR] registration failed:", err)
		return err
	}

	a.mu.Lock()
	a.loading = false
	a.success = true
	a.mu.Unlock()
	log.Println("[AUTH] [INFO] registered:", input.Email)
	return nil
}

// Logout invalidates the session server-side on a best-effort basis, then
// unconditionally clears local tokens and resets to unauthenticated.
func (a *Auth) Logout(ctx context.Context) {
	if refresh := a.tokens.RefreshToken(); refresh != "" {
		if err := a.api.Logout(ctx, refresh); err != nil {
			log.Println("[AUTH] [INFO] server logout failed, clearing local session anyway:", err)
		}
	}
	a.tokens.ClearTokens()

	a.mu.Lock()
	a.user = nil
	a.state = AuthSignedOut
	a.err = ""
	a.mu.Unlock()

	log.Println("[AUTH] [INFO] logged out")
	a.notify(ctx, 0)
}

// RefreshUserData re-fetches the profile outside the check guard.
func (a *Auth) RefreshUserData(ctx context.Context) {
	if a.tokens.AccessToken() == "" {
		a.mu.Lock()
		a.state = AuthSignedOut
		a.checked = true
		a.user = nil
		a.mu.Unlock()
		return
	}

	a.begin()
	user, err := a.api.CurrentUser(ctx)
	a.mu.Lock()
	a.loading = false
	if err != nil {
		log.Println("[AUTH] [ERROR] refreshing user data failed:", err)
		a.mu.Unlock()
		return
	}
	a.user = user
	a.mu.Unlock()
	a.notify(ctx, user.ID)
}

// UpdateProfile replaces the cached profile with the server's representation.
// Errors become displayable state and never touch the session.
func (a *Auth) UpdateProfile(ctx context.Context, update api.ProfileUpdate) {
	a.begin()
	user, err := a.api.UpdateProfile(ctx, update)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = displayError(err, "Failed to update profile")
		log.Println("[AUTH] [ERROR] profile update failed:", err)
		return
	}
	a.user = user
}

// UpdateProfilePicture uploads a picture and patches only the picture field
// of the cached profile. Returns the stored URL, empty on failure.
func (a *Auth) UpdateProfilePicture(ctx context.Context, filename string, picture io.Reader) string {
	a.begin()
	url, err := a.api.UpdateProfilePicture(ctx, filename, picture)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = displayError(err, "Failed to update profile picture")
		log.Println("[AUTH] [ERROR] profile picture update failed:", err)
		return ""
	}
	if a.user != nil {
		a.user.ProfilePicture = url
	}
	return url
}

func (a *Auth) UpdateDietaryPreferences(ctx context.Context, prefs models.DietaryPreferences) {
	a.begin()
	user, err := a.api.UpdateDietaryPreferences(ctx, prefs)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.err = displayError(err, "Failed to update dietary preferences")
		log.Println("[AUTH] [ERROR] dietary preferences update failed:", err)
		return
	}
	a.user = user
}

func (a *Auth) begin() {
	a.mu.Lock()
	a.loading = true
	a.err = ""
	a.mu.Unlock()
}

func (a *Auth) reject(msg string) error {
	a.mu.Lock()
	a.err = msg
	a.mu.Unlock()
	return errors.New(msg)
}

func (a *Auth) notify(ctx context.Context, userID int64) {
	if a.listener != nil {
		a.listener.SessionChanged(ctx, userID)
	}
}

func registerFieldMessage(fieldErr validator.FieldError) string {
	field := lowerCamel(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " is too short"
	default:
		return field + " is invalid"
	}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
