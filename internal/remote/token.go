package remote

import (
	"errors"
	"log/slog"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/tunza-app/tunza/internal/config"
)

// ResolveToken returns the API token, preferring the environment variable
// over the system keyring. Returns an error when neither source has one.
func ResolveToken() (string, error) {
	log := slog.With(slog.String(config.LogKeyComponent, config.CompRemote))

	if token := os.Getenv(config.EnvAPIToken); token != "" {
		log.Debug(config.MsgTokenFromEnv)
		return token, nil
	}

	token, err := keyring.Get(config.KeyringService, config.KeyringTokenUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", errors.New(config.ErrTokenMissing)
		}
		return "", err
	}
	log.Debug(config.MsgTokenFromRing)
	return token, nil
}

// SaveToken stores the API token in the system keyring.
func SaveToken(token string) error {
	return keyring.Set(config.KeyringService, config.KeyringTokenUser, token)
}
