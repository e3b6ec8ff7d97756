package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais o ator e a unidade (prefeitura + secretaria).
// A unidade viaja no token para que nenhuma operação dependa de estado de sessão.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	PrefeituraID string `json:"prefeitura_id"`
	SecretariaID string `json:"secretaria_id"`
	SetorID      string `json:"setor_id,omitempty"`
	Matricula    string `json:"matricula,omitempty"`
	Role         string `json:"role"` // "ADMINISTRADOR" | "FUNCIONARIO"
}

// Subject dados do usuário autenticado gravados no token.
type Subject struct {
	UserID       string
	PrefeituraID string
	SecretariaID string
	SetorID      string
	Matricula    string
	Role         string
}

// Generate gera um token JWT assinado (HS256) com os dados do usuário.
func Generate(secret string, s Subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       s.UserID,
		PrefeituraID: s.PrefeituraID,
		SecretariaID: s.SecretariaID,
		SetorID:      s.SetorID,
		Matricula:    s.Matricula,
		Role:         s.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve os dados do usuário.
// Retorna erro se o token for inválido, expirado ou tiver assinatura incorreta.
func Parse(secret, tokenString string) (Subject, error) {
	if secret == "" {
		return Subject{}, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Subject{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Subject{}, fmt.Errorf("claims inválidos")
	}
	return Subject{
		UserID:       claims.UserID,
		PrefeituraID: claims.PrefeituraID,
		SecretariaID: claims.SecretariaID,
		SetorID:      claims.SetorID,
		Matricula:    claims.Matricula,
		Role:         claims.Role,
	}, nil
}
