package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerview/nerview/config"
)

func TestGenerateJWT(t *testing.T) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret: "test-secret",
		},
	}

	token, err := GenerateJWT(cfg)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Auth.Secret), nil
	})

	if assert.NoError(t, err) {
		assert.True(t, parsedToken.Valid)
	}
}

func TestMissingSecret(t *testing.T) {
	_, err := GenerateJWT(&config.Config{})
	assert.ErrorIs(t, err, ErrSecretNotSet)

	_, err = JWTVerifier(&config.Config{})
	assert.ErrorIs(t, err, ErrSecretNotSet)
}

func TestJWTVerifier(t *testing.T) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret: "test-secret",
		},
	}
	verifier, err := JWTVerifier(cfg)
	require.NoError(t, err)

	router := chi.NewRouter()
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Use(verifier)
	router.Use(jwtauth.Authenticator)
	router.Handle("/", testHandler)

	t.Run("valid JWT token", func(t *testing.T) {
		tokenString, err := GenerateJWT(cfg)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("missing JWT token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := GenerateJWT(&config.Config{Auth: config.AuthConfig{Secret: "other"}})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code)
	})
}
