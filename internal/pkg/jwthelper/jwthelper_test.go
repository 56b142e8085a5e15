package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/domain"
)

var testSigningKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	principal := domain.Principal{
		UserID:   uuid.New(),
		Email:    "mario@example.com",
		Username: "mario",
		Role:     domain.RoleAdmin,
	}

	token, err := GenerateToken(testSigningKey, principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(testSigningKey, token)
	require.NoError(t, err)

	assert.Equal(t, principal, parsed)
}

func TestParseToken_WrongKey(t *testing.T) {
	principal := domain.Principal{
		UserID: uuid.New(),
		Email:  "mario@example.com",
		Role:   domain.RoleUser,
	}

	token, err := GenerateToken(testSigningKey, principal)
	require.NoError(t, err)

	_, err = ParseToken([]byte("a-different-key"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsUnexpectedMethod(t *testing.T) {
	principal := domain.Principal{UserID: uuid.New()}

	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: principal.UserID.String(),
	}

	// alg=none with an empty signature must not be accepted.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_NotAUUID(t *testing.T) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "42",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStateRoundtrip(t *testing.T) {
	state, err := GenerateState(testSigningKey)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	assert.NoError(t, VerifyState(testSigningKey, state))
	assert.ErrorIs(t, VerifyState([]byte("a-different-key"), state), ErrInvalidState)
	assert.ErrorIs(t, VerifyState(testSigningKey, "not-a-jwt"), ErrInvalidState)
}
