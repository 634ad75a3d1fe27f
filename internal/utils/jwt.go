package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

var (
	// ErrMissingToken means the request carried no bearer credential.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidToken means a credential was present but failed signature,
	// algorithm or payload checks.
	ErrInvalidToken = errors.New("invalid token")
)

// IdentityClaims is the token payload.  userId is the only claim written:
// the registered claims are all zero and omitted on encode, so tokens carry
// no expiry and stay valid until the signing secret changes.
type IdentityClaims struct {
	UserID uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token binding userID.  The caller must already
// have authenticated the user (password checked or account just created).
func IssueToken(secret string, userID uint64) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{UserID: userID})
	return t.SignedString([]byte(secret))
}

// VerifyToken checks the signature of raw and returns the embedded user id.
// It does not consult the user store: a validly signed token for a user
// that no longer exists still verifies.
func VerifyToken(secret, raw string) (uint64, error) {
	if raw == "" {
		return 0, ErrMissingToken
	}
	claims := &IdentityClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithStrictDecoding())
	if err != nil || !tok.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// TokenFromHeader extracts the token from an Authorization header value of
// the form "Bearer <token>".  An empty header or one without a second
// segment is a missing credential; any other scheme is an invalid one.
func TokenFromHeader(header string) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}
	return token, nil
}
