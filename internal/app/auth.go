package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
)

const DefaultAuthFile = "auth.secret"

// ErrAuthFileExists is returned by CreateAuthFile when overwrite is not set
var ErrAuthFileExists = errors.New("auth file already exists")

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Auth holds the credentials protecting write endpoints.
// A zero Auth (no hash loaded) lets every request through.
type Auth struct {
	User string
	hash string
}

// ResolveAuthFile returns path, or auth.secret next to the executable when path is empty
func ResolveAuthFile(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// LoadAuth reads a username:hash file. A missing file yields an open Auth and a warning.
func LoadAuth(path string) (*Auth, error) {
	path, err := ResolveAuthFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("no auth file found at %s: write endpoints are UNPROTECTED (create one with `payday-calendar hash-password`)", path)
			return &Auth{}, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}

	log.Info("basic auth enabled for write endpoints (user: %s, file: %s)", parts[0], path)
	return &Auth{User: parts[0], hash: parts[1]}, nil
}

// Enabled reports whether credentials were loaded
func (a *Auth) Enabled() bool {
	return a != nil && a.hash != ""
}

// Check verifies user and password against the loaded credentials
func (a *Auth) Check(user, pass string) bool {
	if !a.Enabled() {
		return true
	}
	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) == 1
	if !userMatch {
		return false
	}
	ok, err := VerifyPassword(pass, a.hash)
	if err != nil {
		log.Error("error verifying password: %v", err)
		return false
	}
	return ok
}

// Middleware enforces Basic Auth on next
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !a.Check(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Payday Calendar"`)
			WriteError(w, r, http.StatusUnauthorized, ErrUnauthorized)
			log.Warn("failed auth attempt from %s (user: %s)", r.RemoteAddr, user)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HashPassword creates an Argon2id hash of the password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// Encode as: $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(decodedHash, computed) == 1, nil
}

// CreateAuthFile writes username:hash to path with mode 0400
func CreateAuthFile(path, username, password string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrAuthFileExists, path)
		}
		// 0400 files must be removed before rewriting
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
