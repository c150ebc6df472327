package api

import (
	"github.com/example/task-manager/modules/friends"
	"github.com/gofiber/fiber/v2"
)

// listFriends handles GET /api/friends.
func (m *APIModule) listFriends(c *fiber.Ctx) error {
	resp, err := m.friends.ListFriends(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// inviteFriend handles POST /api/friends/invite.
func (m *APIModule) inviteFriend(c *fiber.Ctx) error {
	var body InviteBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := m.friends.Invite(c.Context(), &friends.InviteFriendRequest{
		SenderID: currentUserID(c),
		Email:    body.Email,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// removeFriend handles DELETE /api/friends/:friendId.
func (m *APIModule) removeFriend(c *fiber.Ctx) error {
	if err := m.friends.RemoveFriend(c.Context(), currentUserID(c), c.Params("friendId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// friendActivity handles GET /api/friends/:friendId/activity.
func (m *APIModule) friendActivity(c *fiber.Ctx) error {
	resp, err := m.tasks.FriendActivity(c.Context(), currentUserID(c), c.Params("friendId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// inviteInbox handles GET /api/invites.
func (m *APIModule) inviteInbox(c *fiber.Ctx) error {
	resp, err := m.friends.InviteInbox(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// acceptInvite handles POST /api/invites/accept.
func (m *APIModule) acceptInvite(c *fiber.Ctx) error {
	var body AcceptInviteBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.Token == "" {
		return badRequest(c, "Invite token is required")
	}

	resp, err := m.friends.AcceptInvite(c.Context(), &friends.AcceptInviteRequest{
		Token:      body.Token,
		ReceiverID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
