package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/micla/access-console/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestDecode_SinSecret_LeeClaims(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "mrossi", "admin", "RSSMRA85T10A562S", time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Decode("", tok)
	require.NoError(t, err)

	assert.Equal(t, "mrossi", claims.UserName)
	assert.Equal(t, "admin", claims.UserType)
	assert.Equal(t, "RSSMRA85T10A562S", claims.FiscalCode)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry(), 5*time.Second)
}

// Sin secret el token expirado se decodifica igual: la expiración la decide el guard.
func TestDecode_SinSecret_TokenExpiradoNoFalla(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "mrossi", "user", "RSSMRA85T10A562S", -time.Minute)
	require.NoError(t, err)

	claims, err := pkgjwt.Decode("", tok)
	require.NoError(t, err)
	assert.True(t, claims.Expiry().Before(time.Now()))
}

func TestDecode_ConSecret_VerificaFirma(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "mrossi", "admin", "RSSMRA85T10A562S", time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Decode("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")

	claims, err := pkgjwt.Decode(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserType)
}

func TestDecode_ConSecret_TokenExpiradoFalla(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "mrossi", "admin", "RSSMRA85T10A562S", -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Decode(testSecret, tok)
	assert.Error(t, err)
}

func TestDecode_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Decode("", "token.invalido.aqui")
	assert.Error(t, err)

	_, err = pkgjwt.Decode("", "")
	assert.Error(t, err)
}
