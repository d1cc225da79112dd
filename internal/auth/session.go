package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

const sessionTTL = 24 * time.Hour

var errInvalidSession = errors.New("invalid session token")

// IssueSession signs a session token carrying the identity. There is no
// server-side session state; the token is the session.
func IssueSession(secret string, id Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": id.Username,
		"email":    id.Email,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseSession validates a session token and returns the identity it carries.
func ParseSession(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidSession
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	if username == "" {
		return Identity{}, errInvalidSession
	}
	return Identity{Username: username, Email: email}, nil
}
