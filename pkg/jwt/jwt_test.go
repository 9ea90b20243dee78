package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/SellerOps-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testAudience = "authenticated"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "seller@example.com", "", testAudience, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok, pkgjwt.VerifyOptions{Audience: testAudience})
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID())
	assert.Equal(t, "seller@example.com", claims.Email)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "", "", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.VerifyOptions{})
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "", "", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok, pkgjwt.VerifyOptions{})
	assert.Error(t, err)
}

func TestParse_AudienciaDistinta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "", "anon", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.VerifyOptions{Audience: testAudience})
	assert.Error(t, err)
}

func TestParse_SinSujeto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", "", "", "", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.VerifyOptions{})
	assert.Error(t, err)
}
