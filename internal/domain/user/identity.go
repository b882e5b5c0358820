// Package user defines identity records and the account repository contract.
package user

import "time"

// Identity is the signed-in user view carried by session tokens and
// session-change notifications.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Account is the stored credential record backing an identity.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Created      time.Time
	Changed      time.Time
}

// Identity projects the account into its public identity view.
func (a *Account) Identity() *Identity {
	return &Identity{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
	}
}

// Repository defines persistence operations for accounts.
type Repository interface {
	FindByEmail(email string) (*Account, error)
	FindByID(id string) (*Account, error)
	Store(account *Account) error
	Update(account *Account) error
}
