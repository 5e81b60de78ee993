// Package accessctx models who is acting on a request and what they may do.
//
// A request is made either by an AuthenticatedActor (resolved from a session
// token) or by a NamedActor (an anonymous consumer presenting a display name).
// Authorization decisions dispatch on that variant.
package accessctx

import (
	"strings"

	"igram/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// LocalsKey is where the auth middleware stores the AuthenticatedActor.
const LocalsKey = "actor"

type Actor interface {
	actor()
}

type AuthenticatedActor struct {
	ID   bson.ObjectID
	Role string
}

func (AuthenticatedActor) actor() {}

func (a AuthenticatedActor) IsCreator() bool { return a.Role == models.RoleCreator }

type NamedActor struct {
	Name string
}

func (NamedActor) actor() {}

// Named trims the presented consumer name. Blank names yield ok=false.
func Named(name string) (NamedActor, bool) {
	n := strings.TrimSpace(name)
	return NamedActor{Name: n}, n != ""
}

func FromUser(u *models.User) AuthenticatedActor {
	return AuthenticatedActor{ID: u.ID, Role: u.Role}
}

// Authenticated returns the actor attached by the auth middleware, if any.
func Authenticated(c *fiber.Ctx) (AuthenticatedActor, bool) {
	a, ok := c.Locals(LocalsKey).(AuthenticatedActor)
	return a, ok
}
