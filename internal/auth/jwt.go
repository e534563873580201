package auth

import (
	"context"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"tya/internal/catalog"
)

// Claims is the token payload understood by JWTValidator.
type Claims struct {
	UserID   int64  `json:"uid,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// JWTValidator accepts HS256 tokens signed with a shared secret.
type JWTValidator struct {
	secret []byte
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

func (v *JWTValidator) Validate(_ context.Context, token string) (catalog.Identity, error) {
	if token == "" {
		return catalog.Identity{}, ErrUnauthorized
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return catalog.Identity{}, ErrUnauthorized
	}

	userID := claims.UserID
	if userID == 0 && claims.Subject != "" {
		userID, err = strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return catalog.Identity{}, ErrUnauthorized
		}
	}
	if userID <= 0 {
		return catalog.Identity{}, ErrUnauthorized
	}
	return catalog.Identity{UserID: userID, Username: claims.Username}, nil
}

// Sign issues a token for id.
func (v *JWTValidator) Sign(id catalog.Identity, claims jwt.RegisteredClaims) (string, error) {
	c := Claims{UserID: id.UserID, Username: id.Username, RegisteredClaims: claims}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}
