package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator validates the bearer tokens issued by the identity
// provider. Token generation is only exercised by the mock provider
// and by tests.
type Authenticator interface {
	GenerateToken(claims jwt.Claims) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}
