package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the resolved caller: either a registered user (UserID set) or
// an anonymous visitor (SessionKey set).
type Identity struct {
	UserID     uint
	Role       string
	SessionKey string
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

type TokenManager struct {
	secret     []byte
	userTTL    time.Duration
	sessionTTL time.Duration
}

func NewTokenManager(secret string, userTTL, sessionTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), userTTL: userTTL, sessionTTL: sessionTTL}
}

func (m *TokenManager) IssueUserToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(m.userTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// IssueSessionToken binds an anonymous cart to a browser. Session tokens
// outlive user tokens so a visitor's cart survives between visits.
func (m *TokenManager) IssueSessionToken(sessionKey string) (string, error) {
	claims := jwt.MapClaims{
		"session_key": sessionKey,
		"role":        "guest",
		"exp":         time.Now().Add(m.sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	ident := &Identity{}
	if role, ok := claims["role"].(string); ok {
		ident.Role = role
	}
	if userID, ok := claims["user_id"].(float64); ok {
		ident.UserID = uint(userID)
	}
	if sessionKey, ok := claims["session_key"].(string); ok {
		ident.SessionKey = sessionKey
	}
	if ident.UserID == 0 && ident.SessionKey == "" {
		return nil, errors.New("token carries no identity")
	}
	return ident, nil
}
