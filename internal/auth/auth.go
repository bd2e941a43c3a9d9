package auth

import (
	"fmt"
	"time"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/golang-jwt/jwt"
)

const tokenTTL = 72 * time.Hour

// Manager issues and verifies the bearer tokens used by the API.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a token carrying the user's id and role.
func (m *Manager) Issue(user models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID
	claims["username"] = user.Username
	claims["role"] = string(user.Role)
	claims["exp"] = time.Now().Add(tokenTTL).Unix()
	return token.SignedString(m.secret)
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// Parse validates a signed token and extracts the identity claims.
func (m *Manager) Parse(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id missing from token")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, fmt.Errorf("role missing from token")
	}
	return Identity{UserID: userID, Role: models.UserRole(role)}, nil
}
