// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the TweekIT API credentials. The environment is
// consulted first; a directory of plain-text files (one secret per file,
// filename is the key, trimmed contents are the value) is the fallback.
//
// Supported key files: tweakit-api-key, tweakit-api-secret.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// Environment variables holding the credentials. The spelling "TWEAKIT"
// is what the hosted service documents and is kept for compatibility.
const (
	EnvAPIKey    = "TWEAKIT_API_KEY"
	EnvAPISecret = "TWEAKIT_API_SECRET"
)

// Key files looked up in the secrets directory.
const (
	FileAPIKey    = "tweakit-api-key"
	FileAPISecret = "tweakit-api-secret"
)

// ErrMissingCredential is matched by every MissingCredentialError.
var ErrMissingCredential = errors.New("missing credential")

// MissingCredentialError names the environment variable that was absent or empty.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing %s: set the environment variable or add it to .secrets/", e.Name)
}

// Is reports whether target is ErrMissingCredential.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// LookupFunc reads a named value from process-wide state. os.LookupEnv is
// the production implementation.
type LookupFunc func(name string) (string, bool)

// Resolve returns the API key and secret. Each value comes from lookup
// first, then from fallback (the map returned by Load). The key is checked
// before the secret, so when both are missing the error names the key.
func Resolve(lookup LookupFunc, fallback map[string]string) (types.Credentials, error) {
	key, err := resolveOne(lookup, fallback, EnvAPIKey, FileAPIKey)
	if err != nil {
		return types.Credentials{}, err
	}
	secret, err := resolveOne(lookup, fallback, EnvAPISecret, FileAPISecret)
	if err != nil {
		return types.Credentials{}, err
	}
	return types.Credentials{APIKey: key, APISecret: secret}, nil
}

func resolveOne(lookup LookupFunc, fallback map[string]string, env, file string) (string, error) {
	if lookup != nil {
		if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	if v := fallback[file]; v != "" {
		return v, nil
	}
	return "", &MissingCredentialError{Name: env}
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logrus.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
