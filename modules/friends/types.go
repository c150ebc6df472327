package friends

import "time"

// InviteFriendRequest is the request for creating an invite link.
type InviteFriendRequest struct {
	SenderID string `json:"sender_id"`
	Email    string `json:"email"`
}

// InviteFriendResponse carries the generated invite link.
type InviteFriendResponse struct {
	InviteID   string    `json:"invite_id"`
	InviteLink string    `json:"invite_link"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AcceptInviteRequest is the request for accepting an invite token.
type AcceptInviteRequest struct {
	Token      string `json:"token"`
	ReceiverID string `json:"receiver_id"`
}

// AcceptInviteResponse is the response for accepting an invite.
type AcceptInviteResponse struct {
	SenderID string `json:"sender_id"`
}

// ListFriendsRequest is the request for listing accepted friends.
type ListFriendsRequest struct {
	UserID string `json:"user_id"`
}

// FriendResponse is a single friend in a list result.
type FriendResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ConnectedAt time.Time `json:"connected_at"`
}

// ListFriendsResponse is the response for listing friends.
type ListFriendsResponse struct {
	Friends []FriendResponse `json:"friends"`
}

// RemoveFriendRequest is the request for removing a friendship.
type RemoveFriendRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

// RemoveFriendResponse is the response for removing a friendship.
type RemoveFriendResponse struct {
	Removed bool `json:"removed"`
}

// InviteInboxRequest is the request for listing pending invites addressed to
// the user's email.
type InviteInboxRequest struct {
	UserID string `json:"user_id"`
}

// InboxInviteResponse is a single pending invite in the inbox.
type InboxInviteResponse struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// InviteInboxResponse is the response for the invite inbox.
type InviteInboxResponse struct {
	Invites []InboxInviteResponse `json:"invites"`
}

// ResolveCollaboratorsRequest asks for the subset of candidate user IDs that
// are accepted friends of the owner.
type ResolveCollaboratorsRequest struct {
	OwnerID    string   `json:"owner_id"`
	Candidates []string `json:"candidates"`
}

// ResolveCollaboratorsResponse carries the accepted-friend subset.
type ResolveCollaboratorsResponse struct {
	UserIDs []string `json:"user_ids"`
}

// IsFriendRequest asks whether friendID is an accepted friend of userID.
type IsFriendRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

// IsFriendResponse is the response for a friendship check.
type IsFriendResponse struct {
	Friend bool `json:"friend"`
}
