package models

import "time"

// Account is a registered user as persisted in the local store. Accounts are
// append-only: created by registration, never updated, removed only by
// clearing the store.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // lowercase-normalized
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the single current-login record: the Account minus anything
// password-related. At most one Session exists in a store at any time.
type Session struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
