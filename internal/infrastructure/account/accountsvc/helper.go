package accountsvc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/choreworld/choreworld/internal/usecase"
)

// isCircuitFailure decides which introspection outcomes count against the
// breaker. Caller mistakes (bad tokens) must not trip it.
func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, usecase.ErrDependencyUnavailable)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
