package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies the authenticated caller.
type Principal struct {
	Subject string
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates an HMAC-signed access token and extracts the principal.
func (p *Parser) Parse(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token claims")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return Principal{}, fmt.Errorf("token subject is missing")
	}
	return Principal{Subject: subject}, nil
}
