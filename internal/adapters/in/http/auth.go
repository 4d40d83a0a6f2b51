package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "logistics.actor"

var signingMethod = jwt.SigningMethodHS256

// Claims are the bearer token claims. Subject is the user id; driver tokens
// also carry the id of the driver record.
type Claims struct {
	Role     string `json:"role"`
	DriverID int64  `json:"driver_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenAuthenticator verifies HS256 bearer tokens issued by the identity service.
type TokenAuthenticator struct {
	secret []byte
}

func NewTokenAuthenticator(secret string) (*TokenAuthenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenAuthenticator{secret: []byte(secret)}, nil
}

// Issue signs a token for actor. The service itself never logs users in; this
// is used by tooling and tests.
func (a *TokenAuthenticator) Issue(actor kernel.Actor, now time.Time, ttl time.Duration) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}

	claims := Claims{
		Role:     actor.Role().String(),
		DriverID: actor.DriverID(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and turns its claims into an Actor.
func (a *TokenAuthenticator) Parse(token string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return kernel.Actor{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("subject: %w", err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	if role == kernel.RoleDriver {
		return kernel.NewDriverActor(userID, claims.DriverID)
	}
	return kernel.NewActor(userID, role)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's Actor on the context.
func (a *TokenAuthenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := a.Parse(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the Actor stored by Middleware.
func ActorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return actor, nil
}
