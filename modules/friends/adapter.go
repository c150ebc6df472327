package friends

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-manager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthUserPort is the slice of the auth module the friends module needs:
// profile lookups for list enrichment and inbox matching.
type AuthUserPort interface {
	GetUser(ctx context.Context, userID string) (*auth.GetUserResponse, error)
}

func newAuthUserPort(container mono.ServiceContainer) AuthUserPort {
	return auth.NewAuthAdapter(container)
}

// FriendsPort defines the interface other modules use to access friends.
type FriendsPort interface {
	Invite(ctx context.Context, req *InviteFriendRequest) (*InviteFriendResponse, error)
	AcceptInvite(ctx context.Context, req *AcceptInviteRequest) (*AcceptInviteResponse, error)
	ListFriends(ctx context.Context, userID string) (*ListFriendsResponse, error)
	RemoveFriend(ctx context.Context, userID, friendID string) error
	InviteInbox(ctx context.Context, userID string) (*InviteInboxResponse, error)
	ResolveCollaborators(ctx context.Context, ownerID string, candidates []string) ([]string, error)
	IsFriend(ctx context.Context, userID, friendID string) (bool, error)
}

// friendsAdapter wraps ServiceContainer for cross-module communication.
type friendsAdapter struct {
	container mono.ServiceContainer
}

// NewFriendsAdapter creates an adapter for the friends module's services.
func NewFriendsAdapter(container mono.ServiceContainer) FriendsPort {
	if container == nil {
		panic("friends adapter requires non-nil ServiceContainer")
	}
	return &friendsAdapter{container: container}
}

// Invite creates an invite link via the invite service.
func (a *friendsAdapter) Invite(ctx context.Context, req *InviteFriendRequest) (*InviteFriendResponse, error) {
	var resp InviteFriendResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "invite", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("invite service call failed: %w", err)
	}
	return &resp, nil
}

// AcceptInvite redeems an invite token via the accept-invite service.
func (a *friendsAdapter) AcceptInvite(ctx context.Context, req *AcceptInviteRequest) (*AcceptInviteResponse, error) {
	var resp AcceptInviteResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "accept-invite", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("accept-invite service call failed: %w", err)
	}
	return &resp, nil
}

// ListFriends lists accepted friends via the list service.
func (a *friendsAdapter) ListFriends(ctx context.Context, userID string) (*ListFriendsResponse, error) {
	req := ListFriendsRequest{UserID: userID}
	var resp ListFriendsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}

// RemoveFriend deletes a friendship via the remove service.
func (a *friendsAdapter) RemoveFriend(ctx context.Context, userID, friendID string) error {
	req := RemoveFriendRequest{UserID: userID, FriendID: friendID}
	var resp RemoveFriendResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "remove", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("remove service call failed: %w", err)
	}
	return nil
}

// InviteInbox lists pending invites via the invite-inbox service.
func (a *friendsAdapter) InviteInbox(ctx context.Context, userID string) (*InviteInboxResponse, error) {
	req := InviteInboxRequest{UserID: userID}
	var resp InviteInboxResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "invite-inbox", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("invite-inbox service call failed: %w", err)
	}
	return &resp, nil
}

// ResolveCollaborators filters candidates down to accepted friends via the
// resolve-collaborators service.
func (a *friendsAdapter) ResolveCollaborators(ctx context.Context, ownerID string, candidates []string) ([]string, error) {
	req := ResolveCollaboratorsRequest{OwnerID: ownerID, Candidates: candidates}
	var resp ResolveCollaboratorsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "resolve-collaborators", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("resolve-collaborators service call failed: %w", err)
	}
	return resp.UserIDs, nil
}

// IsFriend checks a friendship via the is-friend service.
func (a *friendsAdapter) IsFriend(ctx context.Context, userID, friendID string) (bool, error) {
	req := IsFriendRequest{UserID: userID, FriendID: friendID}
	var resp IsFriendResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "is-friend", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return false, fmt.Errorf("is-friend service call failed: %w", err)
	}
	return resp.Friend, nil
}
