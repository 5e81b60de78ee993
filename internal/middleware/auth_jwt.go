package middleware

import (
	"context"
	"strings"

	"igram/internal/accessctx"
	"igram/internal/auth"
	"igram/internal/common"
	"igram/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type IdentityResolver interface {
	Identity(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// RequireAuth verifies the bearer token, loads the identity it names and
// stores it under accessctx.LocalsKey. Requests without a valid token stop
// here with 401.
func RequireAuth(tokens TokenVerifier, users IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
			return common.Unauthenticated("No token, authorization denied")
		}
		tokenStr := strings.TrimSpace(h[7:])
		if tokenStr == "" {
			return common.Unauthenticated("No token, authorization denied")
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return err
		}
		uid, err := bson.ObjectIDFromHex(claims.UID)
		if err != nil {
			return common.Unauthenticated("Invalid token")
		}

		user, err := users.Identity(c.UserContext(), uid)
		if err != nil {
			return err
		}

		c.Locals(accessctx.LocalsKey, accessctx.FromUser(user))
		c.Locals("user", user)
		return c.Next()
	}
}

// CurrentUser returns the identity loaded by RequireAuth.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals("user").(*models.User)
	return u, ok
}
