package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
)

// JWTProtected verifies the identity provider's bearer token from the
// Authorization header.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtConfig(cfg, "header:Authorization"))
}

// JWTProtectedQuery reads the token from ?token= for clients, such as browser
// websockets, that cannot set headers.
func JWTProtectedQuery(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtConfig(cfg, "query:token"))
}

func jwtConfig(cfg *config.Config, lookup string) jwtware.Config {
	c := jwtware.Config{
		TokenLookup:  lookup,
		ErrorHandler: rejectToken,
	}
	if cfg.AuthIssuer != "" {
		c.SuccessHandler = requireIssuer(cfg.AuthIssuer)
	}
	if cfg.AuthJWKSURL != "" {
		c.JWKSetURLs = []string{cfg.AuthJWKSURL}
	} else {
		c.SigningKey = jwtware.SigningKey{Key: []byte(cfg.AuthJWTSecret)}
	}
	return c
}

func rejectToken(c *fiber.Ctx, _ error) error {
	return dto.Fail(c, fiber.StatusUnauthorized, "Unauthorized: invalid or expired token")
}

// requireIssuer accepts only tokens whose iss claim equals issuer.
func requireIssuer(issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return rejectToken(c, nil)
		}
		iss, err := token.Claims.GetIssuer()
		if err != nil || iss != issuer {
			return rejectToken(c, err)
		}
		return c.Next()
	}
}
