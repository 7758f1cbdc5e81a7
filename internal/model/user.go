package model

import "time"

// User is the application-level profile document stored in the user
// collection. It is one-to-one with an Account via AccountID; the facade
// resolves it with an equality query, not a direct key lookup.
type User struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
