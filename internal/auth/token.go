package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

const issuer = "marmitas"

// Claims carried by access tokens.
type Claims struct {
	Role      Role   `json:"role"`
	Name      string `json:"name,omitempty"`
	SectorID  int64  `json:"sectorId,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret      []byte
	staffTTL    time.Duration
	employeeTTL time.Duration
	clock       civil.Clock
}

// NewTokenIssuer constructs a TokenIssuer.
func NewTokenIssuer(secret string, staffTTL, employeeTTL time.Duration, clock civil.Clock) (*TokenIssuer, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: jwt secret must have at least 16 bytes")
	}
	return &TokenIssuer{
		secret:      []byte(secret),
		staffTTL:    staffTTL,
		employeeTTL: employeeTTL,
		clock:       clock,
	}, nil
}

// Issue signs a token for the principal.
func (t *TokenIssuer) Issue(p Principal) (string, time.Time, error) {
	ttl := t.staffTTL
	if p.Role == RoleEmployee {
		ttl = t.employeeTTL
	}
	now := t.clock.Now()
	expires := now.Add(ttl)
	claims := &Claims{
		Role:      p.Role,
		Name:      p.Name,
		SectorID:  p.SectorID,
		CompanyID: p.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse validates the token and returns its principal.
func (t *TokenIssuer) Parse(raw string) (Principal, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("auth: parse token: %w", errors.Join(err, errInvalidToken))
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || !claims.Role.Valid() {
		return Principal{}, errInvalidToken
	}
	return Principal{
		ID:        id,
		Name:      claims.Name,
		Role:      claims.Role,
		SectorID:  claims.SectorID,
		CompanyID: claims.CompanyID,
	}, nil
}

var errInvalidToken = errors.New("invalid token")
