package accessctx

import (
	"igram/internal/common"
	"igram/internal/models"
)

func CanPublish(a Actor) error {
	if u, ok := a.(AuthenticatedActor); ok && u.IsCreator() {
		return nil
	}
	return common.Forbidden("Only creator can create posts")
}

func CanDeletePost(a Actor, p *models.Post) error {
	u, ok := a.(AuthenticatedActor)
	if !ok || !u.IsCreator() {
		return common.Forbidden("Only creator can delete posts")
	}
	if p.CreatorID != u.ID {
		return common.Forbidden("Not authorized")
	}
	return nil
}

// CanDeleteComment lets authenticated actors remove only their own comments
// (a creator never removes a consumer's comment, even on its own post) and
// named actors remove only comments left under exactly their name.
func CanDeleteComment(a Actor, c *models.Comment) error {
	switch v := a.(type) {
	case AuthenticatedActor:
		if c.UserID == nil || *c.UserID != v.ID {
			return common.Forbidden("Not authorized - you can only delete your own comments")
		}
		return nil
	case NamedActor:
		if c.ConsumerName == "" || c.ConsumerName != v.Name {
			return common.Forbidden("Not authorized - you can only delete your own comments")
		}
		return nil
	default:
		return common.Forbidden("Not authorized")
	}
}
