package auth

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// JWTVerifier accepts identity tokens minted by a sign-in gateway that
// shares an HMAC secret with this server. The token must carry an email
// claim and, when Issuer is set, a matching iss.
type JWTVerifier struct {
	Secret []byte
	Issuer string
}

func (v JWTVerifier) Verify(_ context.Context, credential string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.Secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if v.Issuer != "" && !claims.VerifyIssuer(v.Issuer, true) {
		return Identity{}, fmt.Errorf("%w: wrong issuer", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, fmt.Errorf("%w: no email claim", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	return Identity{Email: email, DisplayName: name}, nil
}
