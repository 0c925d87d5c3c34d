// Package offline keeps a single-slot salted-digest copy of the last
// successful login so staff can keep working when the network (or the
// database) is unreachable. It is a continuity feature, not a security
// boundary: the salt travels with the digest, so anyone holding the cache
// file can brute-force it offline.
package offline

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnavailable is the single failure returned for every offline-login
// problem: no cache, wrong email, wrong password. Collapsing the causes
// avoids leaking which emails have cached credentials.
var ErrUnavailable = errors.New("offline login unavailable")

// User is the minimal identity record the cache can resurrect.
type User struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

type credentialEntry struct {
	Email  string `json:"email"`
	Salt   string `json:"salt"`
	Digest string `json:"digest"`
	User   User   `json:"user"`
}

// Store persists two files under one directory: the salted credential
// cache and the separately-held last-known identity.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) credentialPath() string { return filepath.Join(s.dir, "credentials.json") }
func (s *Store) identityPath() string   { return filepath.Join(s.dir, "identity.json") }

// SaveCredential overwrites the cache slot after a successful online login.
func (s *Store) SaveCredential(email, password string, u User) error {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	salt := hex.EncodeToString(raw)

	entry := credentialEntry{
		Email:  normalizeEmail(email),
		Salt:   salt,
		Digest: digest(password, salt),
		User:   u,
	}
	return s.writeJSON(s.credentialPath(), entry)
}

// Login replays a cached credential. Every failure mode returns
// ErrUnavailable; callers must not distinguish further.
func (s *Store) Login(email, password string) (User, error) {
	data, err := os.ReadFile(s.credentialPath())
	if err != nil {
		return User{}, ErrUnavailable
	}
	var entry credentialEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return User{}, ErrUnavailable
	}
	if entry.Email != normalizeEmail(email) {
		return User{}, ErrUnavailable
	}
	if digest(password, entry.Salt) != entry.Digest {
		return User{}, ErrUnavailable
	}
	return entry.User, nil
}

// SaveIdentity records the last-known authenticated identity, used to
// answer "is someone logged in" without the auth provider.
func (s *Store) SaveIdentity(u User) error {
	return s.writeJSON(s.identityPath(), u)
}

// LastIdentity returns the last-known identity, if any.
func (s *Store) LastIdentity() (User, bool) {
	data, err := os.ReadFile(s.identityPath())
	if err != nil {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, false
	}
	return u, true
}

// Clear wipes both the credential slot and the identity record (logout).
func (s *Store) Clear() error {
	err1 := removeIfPresent(s.credentialPath())
	err2 := removeIfPresent(s.identityPath())
	if err1 != nil {
		return err1
	}
	return err2
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func removeIfPresent(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
