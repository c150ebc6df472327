package friends

import "time"

// FriendStatus represents the state of a friendship edge.
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "PENDING"
	FriendStatusAccepted FriendStatus = "ACCEPTED"
)

// Friend is one direction of a friendship. Accepted friendships always exist
// as two mirrored rows so lookups stay single-sided.
type Friend struct {
	UserID    string       `gorm:"primarykey;size:36" json:"user_id"`
	FriendID  string       `gorm:"primarykey;size:36" json:"friend_id"`
	Status    FriendStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName returns the table name for the Friend entity.
func (Friend) TableName() string {
	return "friends"
}

// InviteStatus represents the state of an invite link.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
)

// Invite is a tokenized friend-invite link sent to an email address.
type Invite struct {
	ID        string       `gorm:"primarykey;size:36" json:"id"`
	Email     string       `gorm:"size:200;not null;index" json:"email"`
	Token     string       `gorm:"size:64;uniqueIndex;not null" json:"-"`
	SenderID  string       `gorm:"size:36;not null;index" json:"sender_id"`
	Status    InviteStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName returns the table name for the Invite entity.
func (Invite) TableName() string {
	return "invites"
}
