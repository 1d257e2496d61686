package mock

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/frontend/domain"
)

const tokenIssuer = "fastygo-mock"

func (p *Provider) issueToken(userID string) (string, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(p.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// verify resolves a bearer token to a user ID. It accepts tokens the
// provider signed itself plus the canned placeholder used by the dev
// quick-login, which never goes through the login flow.
func (p *Provider) verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	if token == DemoToken {
		return DemoUserID, nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}
