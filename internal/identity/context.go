package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

const (
	tokenKey = "user"
	userKey  = "current_user"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

// Subject extracts the identity-provider subject from the verified bearer token.
func Subject(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("invalid token in context")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// Email returns the email claim when the provider includes one.
func Email(c *fiber.Ctx) string {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		email, _ := claims["email"].(string)
		return email
	}
	return ""
}

func SetUser(c *fiber.Ctx, user *models.User) {
	c.Locals(userKey, user)
}

// User returns the local profile resolved for this request.
func User(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoIdentity
	}
	return user, nil
}

// UserID is a shorthand for User(c).ID.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := User(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}
