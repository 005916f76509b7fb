package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity datos de sesión que viajan en el token: quién es, de qué empresa y qué puede ver.
type Identity struct {
	UserID      string
	CompanyCode string
	Username    string
	Role        string   // "admin" | "basic"
	Tabs        []string // pestañas permitidas ("all" = todas)
}

// Claims claims estándar más la identidad del portal.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	CompanyCode string   `json:"company_code"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Tabs        []string `json:"tabs"`
}

// Generate firma (HS256) un token con la identidad indicada.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      id.UserID,
		CompanyCode: id.CompanyCode,
		Username:    id.Username,
		Role:        id.Role,
		Tabs:        id.Tabs,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve la identidad.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Identity{
		UserID:      claims.UserID,
		CompanyCode: claims.CompanyCode,
		Username:    claims.Username,
		Role:        claims.Role,
		Tabs:        claims.Tabs,
	}, nil
}
