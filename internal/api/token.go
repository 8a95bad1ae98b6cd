// ABOUTME: Room access token issuing for the realtime audio transport
// ABOUTME: HS256 JWTs carrying identity and a room-join video grant
package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// VideoGrant is the room permission block embedded in access tokens.
type VideoGrant struct {
	RoomJoin bool   `json:"roomJoin"`
	Room     string `json:"room"`
}

// TokenClaims is the full claim set for a room access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Name  string     `json:"name"`
	Video VideoGrant `json:"video"`
}

// IssueToken signs a room access token for the given identity.
func IssueToken(apiKey, apiSecret, identity, room string, ttl time.Duration) (string, error) {
	if apiKey == "" || apiSecret == "" {
		return "", fmt.Errorf("api key and secret are required to issue tokens")
	}

	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    apiKey,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  identity,
		Video: VideoGrant{RoomJoin: true, Room: room},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(apiSecret))
}

// ParseToken verifies a token and returns its claims. Used by tests and
// any in-process consumer that needs to inspect a grant.
func ParseToken(apiSecret, raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(apiSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
