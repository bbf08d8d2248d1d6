package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"yatube/internal/cache"
	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "yatube_session"
	tokenIssuer   = "yatube"
	tokenAudience = "yatube-web"
	tokenTTL      = 14 * 24 * time.Hour

	viewerLocal = "viewer"
)

// Viewer is the identity a request was made with. The zero value is an anonymous visitor.
type Viewer struct {
	User *models.User
}

// Authenticated reports whether the request carries a valid session.
func (v Viewer) Authenticated() bool {
	return v.User != nil
}

// Username returns the viewer's username, or "" when anonymous.
func (v Viewer) Username() string {
	if v.User == nil {
		return ""
	}
	return v.User.Username
}

// viewerFrom returns the viewer resolved for c, anonymous when none was.
func viewerFrom(c *fiber.Ctx) Viewer {
	if v, ok := c.Locals(viewerLocal).(Viewer); ok {
		return v
	}
	return Viewer{}
}

// withViewer adapts a handler taking the request's viewer to a fiber.Handler.
func (s *Server) withViewer(h func(c *fiber.Ctx, viewer Viewer) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h(c, viewerFrom(c))
	}
}

// loginRequired is withViewer that sends anonymous visitors to the login page
// with the requested path as the "next" target.
func (s *Server) loginRequired(h func(c *fiber.Ctx, viewer Viewer) error) fiber.Handler {
	return s.withViewer(func(c *fiber.Ctx, viewer Viewer) error {
		if !viewer.Authenticated() {
			return c.Redirect(loginURL(c.OriginalURL()))
		}
		return h(c, viewer)
	})
}

// issueToken signs a session token for userID.
func (s *Server) issueToken(userID uint) (string, time.Time, error) {
	if s.config.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	expires := now.Add(tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// parseToken validates raw and returns its claims.
func (s *Server) parseToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// startSession logs user in by setting the session cookie.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, expires, err := s.issueToken(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// endSession revokes the current session token, if any, and clears the cookie.
func (s *Server) endSession(c *fiber.Ctx) {
	if raw := c.Cookies(sessionCookie); raw != "" {
		if claims, err := s.parseToken(raw); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := cache.RevokeToken(c.UserContext(), claims.ID, ttl); err != nil {
				middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session token",
					slog.String("error", err.Error()))
			}
		}
	}
	c.ClearCookie(sessionCookie)
}

// resolveViewer reads the session cookie once per request and stores the
// resulting Viewer in the request locals. Invalid, expired and revoked
// sessions resolve to an anonymous viewer.
func (s *Server) resolveViewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(sessionCookie)
		if raw == "" {
			return c.Next()
		}

		ctx := c.UserContext()
		claims, err := s.parseToken(raw)
		if err != nil {
			return c.Next()
		}

		revoked, err := cache.IsRevoked(ctx, claims.ID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "token revocation check failed",
				slog.String("error", err.Error()))
		} else if revoked {
			return c.Next()
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil {
			return c.Next()
		}

		user, err := s.users.GetByID(ctx, uint(userID))
		if err != nil {
			if !models.IsNotFound(err) {
				return err
			}
			return c.Next()
		}

		c.Locals(viewerLocal, Viewer{User: user})
		c.Locals("userID", user.ID)
		c.SetUserContext(middleware.WithUserID(ctx, user.ID))
		return c.Next()
	}
}
