// Package accounts keeps registered users and the single current session in
// the local key-value store, JSON-encoded under two fixed keys. It is a
// single-user credential store, not a multi-tenant user service: one session
// exists at a time and logging in replaces it.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moviehub/pkg/localstore"
	"moviehub/pkg/models"
)

const (
	accountsKey = "moviehub_accounts"
	sessionKey  = "moviehub_session"
)

// local@domain.tld shape, nothing stricter
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Store struct {
	KV localstore.Store
}

func NewStore(kv localstore.Store) *Store {
	return &Store{KV: kv}
}

// Register validates the input, rejects duplicate emails case-insensitively
// and appends a new account. It does not log the new account in.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}
	if len(password) < 6 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if len(password) > 72 {
		return nil, &ValidationError{Field: "password", Reason: "must be at most 72 characters"}
	}

	all, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if strings.EqualFold(a.Email, email) {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	all = append(all, account)
	if err := s.saveAccounts(ctx, all); err != nil {
		return nil, err
	}
	return &account, nil
}

// Login matches the email case-insensitively, checks the password and
// persists the new session. ErrNoAccount and ErrInvalidCredentials stay
// distinct so callers can tell the two apart; what they show the user is
// their business.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	all, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			account = &all[i]
			break
		}
	}
	if account == nil {
		return nil, ErrNoAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := models.Session{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.KV.Put(ctx, sessionKey, string(raw)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}

// Logout deletes the session record. Deleting an absent session is fine.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.KV.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the persisted session, or nil when logged out.
func (s *Store) Current(ctx context.Context) (*models.Session, error) {
	raw, ok, err := s.KV.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

func (s *Store) loadAccounts(ctx context.Context) ([]models.Account, error) {
	raw, ok, err := s.KV.Get(ctx, accountsKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var all []models.Account
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return all, nil
}

func (s *Store) saveAccounts(ctx context.Context, all []models.Account) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.KV.Put(ctx, accountsKey, string(raw)); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
