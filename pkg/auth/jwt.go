package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nerview/nerview/config"
)

const JwtAlg = "HS256"

var ErrSecretNotSet = errors.New(
	"auth secret not set. Ensure NERVIEW_AUTH_SECRET is set in your environment",
)

// GenerateJWT generates a JWT token using the given config.
// Requires that NERVIEW_AUTH_SECRET is set in the environment.
func GenerateJWT(cfg *config.Config) (string, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	_, tokenString, err := tokenAuth.Encode(nil)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func JWTVerifier(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return nil, ErrSecretNotSet
	}
	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	return jwtauth.Verifier(tokenAuth), nil
}
