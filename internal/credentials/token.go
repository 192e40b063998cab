package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"ghostie/internal/config"
)

// EnvKey names both the environment fallback and the key inside the token file.
const EnvKey = "GITHUB_TOKEN"

// ErrTokenMissing is returned when neither the token file nor the environment
// provides a token.
var ErrTokenMissing = errors.New("github token not set")

// Get returns the stored token, preferring the token file over the environment.
func Get(cfg *config.Config) (string, error) {
	if cfg == nil {
		return "", errors.New("credentials require config")
	}
	token, err := readFile(cfg.TokenPath())
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}
	if env := strings.TrimSpace(os.Getenv(EnvKey)); env != "" {
		return env, nil
	}
	return "", ErrTokenMissing
}

// IsSet reports whether Get would return a token.
func IsSet(cfg *config.Config) bool {
	token, err := Get(cfg)
	return err == nil && token != ""
}

// Set overwrites the token file. The file is readable only by the owner.
func Set(cfg *config.Config, token string) error {
	if cfg == nil {
		return errors.New("credentials require config")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	path := cfg.TokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	content, err := godotenv.Marshal(map[string]string{EnvKey: token})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restrict token file: %w", err)
	}
	return nil
}

func readFile(path string) (string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(values[EnvKey]), nil
}
