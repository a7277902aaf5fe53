package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xela07ax/netsec-analytics/internal/domain"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// ValidatorOptions narrows which viewer tokens are accepted.
type ValidatorOptions struct {
	// Issuer, when set, must match the iss claim.
	Issuer string
	// Leeway absorbs clock skew on exp, nbf and iat.
	Leeway time.Duration
}

// BaseValidator checks viewer tokens signed with RS256 only. Tokens must
// carry an expiry.
type BaseValidator struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

func NewBaseValidator(pubKey *rsa.PublicKey, opts ValidatorOptions) *BaseValidator {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(opts.Leeway),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	return &BaseValidator{publicKey: pubKey, parser: jwt.NewParser(parserOpts...)}
}

// VerifyToken implements TokenValidator. The raw token or a full
// "Bearer <token>" header value are both accepted.
func (v *BaseValidator) VerifyToken(header string) (*domain.ViewerClaims, error) {
	raw := bearerToken(header)
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &domain.ViewerClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, v.key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: no user_id", ErrInvalidToken)
	}
	return claims, nil
}

func (v *BaseValidator) key(*jwt.Token) (any, error) { return v.publicKey, nil }

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// ParseRSAPublicKey decodes the PEM key named by auth.public_key_path.
func ParseRSAPublicKey(pemData []byte) (*rsa.PublicKey, error) {
	if len(pemData) == 0 {
		return nil, errors.New("auth: public key is empty")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemData)
	if err != nil {
		return nil, fmt.Errorf("auth: parse public key: %w", err)
	}
	return key, nil
}
