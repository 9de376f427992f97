package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/errs"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload for an authenticated actor.
type Claims struct {
	UserID    int64  `json:"uid,string"`
	Username  string `json:"usr"`
	FullName  string `json:"name"`
	Role      string `json:"role"`
	Wholesale bool   `json:"wholesale"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT for the user.
func IssueToken(u *domain.User, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Wholesale: u.Wholesale,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errs.Internal(err, "sign token")
	}
	return signed, nil
}

// ActorFromClaims rebuilds the actor context the services consume. The
// engine trusts this context; it is populated only from a verified token.
func ActorFromClaims(c *Claims) *domain.User {
	return &domain.User{
		ID:        c.UserID,
		Username:  c.Username,
		FullName:  c.FullName,
		Role:      c.Role,
		Wholesale: c.Wholesale,
	}
}
