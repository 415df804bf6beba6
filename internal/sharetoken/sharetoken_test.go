package sharetoken

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privateKey = key
	publicKey = &key.PublicKey
}

func TestSignAndValidateGameUUID(t *testing.T) {
	useTestKeys(t)

	gameUUID := uuid.New().String()
	signed, err := Sign(gameUUID)
	assert.NoError(t, err)

	got, err := ValidGameUUID(signed)
	assert.NoError(t, err)
	assert.Equal(t, gameUUID, got)
}

func TestValidGameUUID_InvalidAudience(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  uuid.New().String(),
	})

	signedToken, err := token.SignedString(privateKey)
	require.NoError(t, err)

	got, err := ValidGameUUID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Empty(t, got)
}

func TestValidGameUUID_InvalidIssuer(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  uuid.New().String(),
	})

	signedToken, err := token.SignedString(privateKey)
	require.NoError(t, err)

	got, err := ValidGameUUID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Empty(t, got)
}

func TestValidGameUUID_BadSubject(t *testing.T) {
	useTestKeys(t)

	signed, err := Sign("not-a-uuid")
	assert.NoError(t, err)

	got, err := ValidGameUUID(signed)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestValidGameUUID_Expired(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    Issuer,
		Subject:   uuid.New().String(),
	})

	signedToken, err := token.SignedString(privateKey)
	require.NoError(t, err)

	got, err := ValidGameUUID(signedToken)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "token is expired")
	}
	assert.Empty(t, got)
}
