package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims que emite el backend en el access token.
//   - us: nombre de usuario
//   - ut: tipo de usuario (rol: "admin" | "user")
//   - fs: código fiscal del empleado
type Claims struct {
	jwt.RegisteredClaims
	UserName   string `json:"us"`
	UserType   string `json:"ut"`
	FiscalCode string `json:"fs"`
}

// Generate genera un token HS256 con los claims del backend.
// La consola no emite tokens en producción; se usa en tests y herramientas locales.
func Generate(secret, userName, userType, fiscalCode string, exp time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
		UserName:   userName,
		UserType:   userType,
		FiscalCode: fiscalCode,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Decode extrae los claims del token.
// Con secret vacío no verifica la firma ni la expiración: la consola solo necesita leer
// exp/ut/fs, y el guard decide con la expiración. Con secret verifica firma HS* y expiración.
func Decode(secret, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if secret == "" {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("jwt: decodificar: %w", err)
		}
		if claims.ExpiresAt == nil {
			return nil, fmt.Errorf("jwt: claim exp ausente")
		}
		return claims, nil
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// Expiry devuelve el instante de expiración (cero si no hay claim exp).
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
