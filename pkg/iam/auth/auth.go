package auth

import (
	"net/http"
	"strings"

	"github.com/talentrail/screening/pkg/errx"
	"github.com/talentrail/screening/pkg/kernel"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeMissingAPIKey = ErrRegistry.Register("MISSING_API_KEY", errx.TypeAuthorization, http.StatusUnauthorized, "API key is required")
	CodeInvalidAPIKey = ErrRegistry.Register("INVALID_API_KEY", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid API key")
)

func ErrMissingAPIKey() *errx.Error {
	return ErrRegistry.New(CodeMissingAPIKey)
}

func ErrInvalidAPIKey() *errx.Error {
	return ErrRegistry.New(CodeInvalidAPIKey)
}

// AuthContext carries the identity resolved from an API key
type AuthContext struct {
	EmployerID kernel.EmployerID
	UserID     kernel.UserID
}

// Config maps API keys to their owning employer.
// Entries use the form "key:employer_id:user_id", comma separated.
type Config struct {
	Keys map[string]AuthContext
}

// ParseKeys builds a Config from the API_KEYS env format
func ParseKeys(raw string) Config {
	cfg := Config{Keys: make(map[string]AuthContext)}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 {
			continue
		}
		ctx := AuthContext{
			EmployerID: kernel.EmployerID(parts[1]),
		}
		if len(parts) > 2 {
			ctx.UserID = kernel.UserID(parts[2])
		}
		cfg.Keys[parts[0]] = ctx
	}
	return cfg
}
