package auth

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Security errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrJWTSecretEmpty = errors.New("JWT secret is empty or invalid")
	ErrJWTSecretWeak  = errors.New("JWT secret is too weak for security requirements")
)

// Claims represents the bearer token claims this server trusts. Token
// issuance belongs to an external collaborator; this package only verifies.
type Claims struct {
	jwt.RegisteredClaims
}

// CustomerID returns the customer identity the token was issued for.
func (c *Claims) CustomerID() string {
	return c.Subject
}

// Verifier validates bearer tokens and extracts claims, with support for a
// rotated-out previous secret during a transition window.
type Verifier struct {
	secret         []byte
	previousSecret []byte
	secretLock     sync.RWMutex
	rotationLogger *log.Logger
}

// NewVerifier creates a token verifier with secure JWT secret validation.
func NewVerifier(jwtSecret string) (*Verifier, error) {
	if jwtSecret == "" {
		return nil, ErrJWTSecretEmpty
	}
	if len(jwtSecret) < 32 {
		return nil, ErrJWTSecretWeak
	}
	if !validateJWTSecretStrength(jwtSecret) {
		return nil, ErrJWTSecretWeak
	}

	return &Verifier{
		secret:         []byte(jwtSecret),
		rotationLogger: log.New(os.Stdout, "[AUTH-ROTATION] ", log.Ldate|log.Ltime|log.LUTC),
	}, nil
}

// validateJWTSecretStrength checks if a JWT secret meets cryptographic
// requirements (Shannon entropy >= 3.5 bits/char).
func validateJWTSecretStrength(secret string) bool {
	entropy := 0.0
	charCount := make(map[rune]int)
	for _, char := range secret {
		charCount[char]++
	}
	for _, count := range charCount {
		probability := float64(count) / float64(len(secret))
		entropy -= probability * math.Log2(probability)
	}
	return entropy >= 3.5
}

// RotateSecret installs a new signing secret, keeping the old one around so
// tokens issued just before rotation still verify.
func (v *Verifier) RotateSecret(newSecret string) error {
	if len(newSecret) < 32 || !validateJWTSecretStrength(newSecret) {
		return ErrJWTSecretWeak
	}

	v.secretLock.Lock()
	defer v.secretLock.Unlock()

	v.previousSecret = v.secret
	v.secret = []byte(newSecret)
	v.rotationLogger.Printf("JWT secret rotated - dual-key validation enabled for the transition window")
	return nil
}

func (v *Verifier) currentSecret() []byte {
	v.secretLock.RLock()
	defer v.secretLock.RUnlock()
	return v.secret
}

func (v *Verifier) hasPreviousSecret() bool {
	v.secretLock.RLock()
	defer v.secretLock.RUnlock()
	return len(v.previousSecret) > 0
}

func (v *Verifier) previous() []byte {
	v.secretLock.RLock()
	defer v.secretLock.RUnlock()
	return v.previousSecret
}

// ParseClaims validates a bearer token and returns its claims.
func (v *Verifier) ParseClaims(tokenString string) (*Claims, error) {
	claims, err := v.parseWithSecret(tokenString, v.currentSecret())
	if err == nil {
		return claims, nil
	}

	if v.hasPreviousSecret() {
		claims, err = v.parseWithSecret(tokenString, v.previous())
		if err == nil {
			v.rotationLogger.Printf("token validated with previous secret during transition window")
			return claims, nil
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	return nil, ErrInvalidToken
}

func (v *Verifier) parseWithSecret(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
