package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT e os campos da sessão.
// Role permite ao middleware montar a sessão sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	EmpresaID   string   `json:"empresa_id"`
	Role        string   `json:"role"` // "admin" | "vendedor" | "financeiro"
	Permissions []string `json:"permissoes,omitempty"`
}

// Generate gera um token assinado (HS256) com usuário, empresa, papel e permissões extras.
func Generate(secret, userID, empresaID, role, issuer string, expMinutes int, permissions ...string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: segredo vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      userID,
		EmpresaID:   empresaID,
		Role:        role,
		Permissions: permissions,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve os claims.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: segredo vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
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
	return claims, nil
}
