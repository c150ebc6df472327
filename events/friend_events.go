package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// FriendInviteCreatedEvent is emitted when a friend invite is created.
// Email delivery of the invite link is handled (or stubbed) by consumers.
type FriendInviteCreatedEvent struct {
	InviteID   string    `json:"invite_id"`
	SenderID   string    `json:"sender_id"`
	Email      string    `json:"email"`
	InviteLink string    `json:"invite_link"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// FriendInviteCreatedV1 is the typed event definition for invite creation.
// Subject: events.friends.v1.friend-invite-created
var FriendInviteCreatedV1 = helper.EventDefinition[FriendInviteCreatedEvent](
	"friends", "FriendInviteCreated", "v1",
)

// FriendAddedEvent is emitted when an invite is accepted and a mutual
// friendship is established.
type FriendAddedEvent struct {
	UserID   string    `json:"user_id"`
	FriendID string    `json:"friend_id"`
	AddedAt  time.Time `json:"added_at"`
}

// FriendAddedV1 is the typed event definition for friendship creation.
// Subject: events.friends.v1.friend-added
var FriendAddedV1 = helper.EventDefinition[FriendAddedEvent](
	"friends", "FriendAdded", "v1",
)
