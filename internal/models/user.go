package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

type User struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PasswordHash    string   `json:"-"` // never serialized
	Role            UserRole `json:"role"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`

	// optional Telegram link for assignment notifications; 0 = unlinked
	TelegramChatID int64 `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Ref() UserRef {
	return UserRef{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// UserWithTaskCounts annotates a user with per-status assignment counts
// for the admin user listing.
type UserWithTaskCounts struct {
	User
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
