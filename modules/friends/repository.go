package friends

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInviteNotFound is returned when an invite token does not exist.
	ErrInviteNotFound = errors.New("invalid invite token")
)

// Repository handles friendship and invite persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new friends Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateInvite stores a new invite.
func (r *Repository) CreateInvite(invite *Invite) error {
	if err := r.db.Create(invite).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

// FindInviteByToken retrieves an invite by its token.
func (r *Repository) FindInviteByToken(token string) (*Invite, error) {
	var invite Invite
	if err := r.db.First(&invite, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	return &invite, nil
}

// MarkInviteAccepted flips an invite to ACCEPTED.
func (r *Repository) MarkInviteAccepted(id string) error {
	if err := r.db.Model(&Invite{}).Where("id = ?", id).
		Update("status", InviteStatusAccepted).Error; err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}
	return nil
}

// PendingInvitesByEmail returns unexpired pending invites addressed to email.
func (r *Repository) PendingInvitesByEmail(email string, now time.Time) ([]Invite, error) {
	var invites []Invite
	err := r.db.
		Where("email = ? AND status = ? AND expires_at > ?", email, InviteStatusPending, now).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query invites: %w", err)
	}
	return invites, nil
}

// CreateMutualFriendship inserts both directions of an accepted friendship.
// Existing rows are left untouched, making acceptance idempotent.
func (r *Repository) CreateMutualFriendship(userID, friendID string) error {
	now := time.Now()
	rows := []Friend{
		{UserID: userID, FriendID: friendID, Status: FriendStatusAccepted, CreatedAt: now},
		{UserID: friendID, FriendID: userID, Status: FriendStatusAccepted, CreatedAt: now},
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

// RemoveFriendship deletes both directions of a friendship.
func (r *Repository) RemoveFriendship(userID, friendID string) error {
	err := r.db.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Delete(&Friend{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// AcceptedFriends returns the accepted friendship rows for a user.
func (r *Repository) AcceptedFriends(userID string) ([]Friend, error) {
	var rows []Friend
	err := r.db.
		Where("user_id = ? AND status = ?", userID, FriendStatusAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	return rows, nil
}

// IsFriend reports whether friendID is an accepted friend of userID.
func (r *Repository) IsFriend(userID, friendID string) (bool, error) {
	var count int64
	err := r.db.Model(&Friend{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", userID, friendID, FriendStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count > 0, nil
}

// FilterAcceptedFriends returns the subset of candidates that are accepted
// friends of userID. Unknown or non-friend IDs are silently dropped.
func (r *Repository) FilterAcceptedFriends(userID string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&Friend{}).
		Where("user_id = ? AND status = ? AND friend_id IN ?", userID, FriendStatusAccepted, candidates).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter collaborators: %w", err)
	}
	return ids, nil
}
