// Package storage holds the client's durable local state: the token pair and
// the persisted favorites blob. The persisted field set is enumerated in the
// State struct; nothing else survives a restart.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"tastebite/internal/models"
)

// FavoritesBlob is the persisted favorites list together with the id of the
// user it belongs to. A blob whose user id no longer matches the signed-in
// user must be discarded.
type FavoritesBlob struct {
	UserID   int64            `json:"user_id"`
	Products []models.Product `json:"products"`
}

type State struct {
	AccessToken  string         `json:"access_token,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	Favorites    *FavoritesBlob `json:"favorites,omitempty"`
}

// Store is a file-backed state container. With an empty path it is
// memory-only, which the tests rely on. Access is synchronous and guarded by
// a mutex; concurrent access from another process is not guarded, matching
// the browser localStorage it replaces.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the state file at path, creating an empty store if the file does
// not exist yet. A corrupt file is discarded rather than failing startup.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		log.Println("[STORAGE] [ERROR] state file corrupt, starting fresh:", err)
		s.state = State{}
	}
	return s, nil
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return &Store{}
}

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RefreshToken
}

func (s *Store) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = access
	s.state.RefreshToken = refresh
	s.persist()
}

// SetAccessToken replaces only the access token, used after a silent refresh.
func (s *Store) SetAccessToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = access
	s.persist()
}

func (s *Store) ClearTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = ""
	s.state.RefreshToken = ""
	s.persist()
}

// Favorites returns a copy of the persisted blob; the caller may mutate the
// returned product slice without affecting stored state.
func (s *Store) Favorites() (FavoritesBlob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Favorites == nil {
		return FavoritesBlob{}, false
	}
	blob := *s.state.Favorites
	blob.Products = append([]models.Product(nil), blob.Products...)
	return blob, true
}

func (s *Store) SetFavorites(blob FavoritesBlob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob.Products = append([]models.Product(nil), blob.Products...)
	s.state.Favorites = &blob
	s.persist()
}

func (s *Store) ClearFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Favorites = nil
	s.persist()
}

// persist writes the state atomically via a temp file rename. Callers hold
// the mutex. Write failures are logged, not returned: losing persistence
// degrades to memory-only behavior instead of failing the user action.
func (s *Store) persist() {
	if s.path == "" {
		return
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		log.Println("[STORAGE] [ERROR] marshal state failed:", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Println("[STORAGE] [ERROR] create state dir failed:", err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		log.Println("[STORAGE] [ERROR] write state file failed:", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		log.Println("[STORAGE] [ERROR] replace state file failed:", err)
	}
}
