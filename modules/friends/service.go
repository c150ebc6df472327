package friends

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const inviteValidity = 7 * 24 * time.Hour

var (
	// ErrEmailRequired is returned when an invite is created without an email.
	ErrEmailRequired = errors.New("email is required")
	// ErrInviteExpired is returned for expired or already-used invites.
	ErrInviteExpired = errors.New("invite expired or already used")
)

// inviteFriend handles the invite service request: generates a secure token
// link valid for seven days. Delivery of the link is left to event consumers.
func (m *FriendsModule) inviteFriend(_ context.Context, req InviteFriendRequest, _ *mono.Msg) (InviteFriendResponse, error) {
	if req.Email == "" {
		return InviteFriendResponse{}, ErrEmailRequired
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return InviteFriendResponse{}, fmt.Errorf("failed to generate invite token: %w", err)
	}
	token := hex.EncodeToString(buf)

	invite := &Invite{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Token:     token,
		SenderID:  req.SenderID,
		Status:    InviteStatusPending,
		ExpiresAt: time.Now().Add(inviteValidity),
		CreatedAt: time.Now(),
	}
	if err := m.repo.CreateInvite(invite); err != nil {
		return InviteFriendResponse{}, err
	}

	link := m.frontendURL + "/invite/" + token

	if m.eventBus != nil {
		event := events.FriendInviteCreatedEvent{
			InviteID:   invite.ID,
			SenderID:   invite.SenderID,
			Email:      invite.Email,
			InviteLink: link,
			ExpiresAt:  invite.ExpiresAt,
		}
		if err := events.FriendInviteCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[friends] Warning: failed to publish FriendInviteCreated event: %v", err)
		}
	}

	return InviteFriendResponse{
		InviteID:   invite.ID,
		InviteLink: link,
		ExpiresAt:  invite.ExpiresAt,
	}, nil
}

// acceptInvite handles the accept-invite service request, creating the
// mutual friendship. Acceptance is idempotent at the friendship level.
func (m *FriendsModule) acceptInvite(_ context.Context, req AcceptInviteRequest, _ *mono.Msg) (AcceptInviteResponse, error) {
	invite, err := m.repo.FindInviteByToken(req.Token)
	if err != nil {
		return AcceptInviteResponse{}, err
	}
	if invite.Status != InviteStatusPending || invite.ExpiresAt.Before(time.Now()) {
		return AcceptInviteResponse{}, ErrInviteExpired
	}

	if err := m.repo.CreateMutualFriendship(invite.SenderID, req.ReceiverID); err != nil {
		return AcceptInviteResponse{}, err
	}
	if err := m.repo.MarkInviteAccepted(invite.ID); err != nil {
		return AcceptInviteResponse{}, err
	}

	if m.eventBus != nil {
		event := events.FriendAddedEvent{
			UserID:   invite.SenderID,
			FriendID: req.ReceiverID,
			AddedAt:  time.Now(),
		}
		if err := events.FriendAddedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[friends] Warning: failed to publish FriendAdded event: %v", err)
		}
	}

	return AcceptInviteResponse{SenderID: invite.SenderID}, nil
}

// listFriends handles the list-friends service request, enriching each entry
// with the friend's profile. Friends whose profile cannot be loaded are
// skipped rather than failing the whole list.
func (m *FriendsModule) listFriends(ctx context.Context, req ListFriendsRequest, _ *mono.Msg) (ListFriendsResponse, error) {
	rows, err := m.repo.AcceptedFriends(req.UserID)
	if err != nil {
		return ListFriendsResponse{}, err
	}

	resp := ListFriendsResponse{Friends: make([]FriendResponse, 0, len(rows))}
	for _, row := range rows {
		user, err := m.authPort.GetUser(ctx, row.FriendID)
		if err != nil {
			log.Printf("[friends] Warning: failed to load profile for friend %s: %v", row.FriendID, err)
			continue
		}
		resp.Friends = append(resp.Friends, FriendResponse{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			ConnectedAt: row.CreatedAt,
		})
	}
	return resp, nil
}

// removeFriend handles the remove-friend service request.
func (m *FriendsModule) removeFriend(_ context.Context, req RemoveFriendRequest, _ *mono.Msg) (RemoveFriendResponse, error) {
	if err := m.repo.RemoveFriendship(req.UserID, req.FriendID); err != nil {
		return RemoveFriendResponse{}, err
	}
	return RemoveFriendResponse{Removed: true}, nil
}

// inviteInbox handles the invite-inbox service request: pending unexpired
// invites addressed to the requesting user's email.
func (m *FriendsModule) inviteInbox(ctx context.Context, req InviteInboxRequest, _ *mono.Msg) (InviteInboxResponse, error) {
	user, err := m.authPort.GetUser(ctx, req.UserID)
	if err != nil {
		return InviteInboxResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	invites, err := m.repo.PendingInvitesByEmail(user.Email, time.Now())
	if err != nil {
		return InviteInboxResponse{}, err
	}

	resp := InviteInboxResponse{Invites: make([]InboxInviteResponse, 0, len(invites))}
	for _, inv := range invites {
		entry := InboxInviteResponse{
			ID:        inv.ID,
			Token:     inv.Token,
			SenderID:  inv.SenderID,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		}
		if sender, err := m.authPort.GetUser(ctx, inv.SenderID); err == nil {
			entry.SenderName = sender.Name
			entry.SenderEmail = sender.Email
		}
		resp.Invites = append(resp.Invites, entry)
	}
	return resp, nil
}

// resolveCollaborators handles the resolve-collaborators service request.
func (m *FriendsModule) resolveCollaborators(_ context.Context, req ResolveCollaboratorsRequest, _ *mono.Msg) (ResolveCollaboratorsResponse, error) {
	ids, err := m.repo.FilterAcceptedFriends(req.OwnerID, req.Candidates)
	if err != nil {
		return ResolveCollaboratorsResponse{}, err
	}
	return ResolveCollaboratorsResponse{UserIDs: ids}, nil
}

// isFriend handles the is-friend service request.
func (m *FriendsModule) isFriend(_ context.Context, req IsFriendRequest, _ *mono.Msg) (IsFriendResponse, error) {
	ok, err := m.repo.IsFriend(req.UserID, req.FriendID)
	if err != nil {
		return IsFriendResponse{}, err
	}
	return IsFriendResponse{Friend: ok}, nil
}
