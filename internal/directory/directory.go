// Package directory holds the account list used for login and courier lookup.
package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"yoyo-delivery/internal/apperr"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/store"
)

// Directory is the append-only account list, written through to the store.
type Directory struct {
	mu       sync.Mutex
	store    *store.Store
	logger   logx.Logger
	accounts []domain.Account
}

// New loads the account list, seeding the store when it holds none.
func New(ctx context.Context, st *store.Store, seed []domain.Account, logger logx.Logger) *Directory {
	accounts := store.Load(ctx, st, store.KeyAccounts, seed)
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return &Directory{
		store:    st,
		logger:   logger.With(logx.String("component", "directory")),
		accounts: accounts,
	}
}

// FindByCredentials returns the first account whose username and password both match exactly.
func (d *Directory) FindByCredentials(username, password string) (domain.Account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if a.Username == username && a.Password == password {
			return a, true
		}
	}
	return domain.Account{}, false
}

// Add validates in, assigns the next id and persists the grown list.
// Usernames are not checked for uniqueness.
func (d *Directory) Add(ctx context.Context, in domain.NewAccount) (domain.Account, error) {
	if err := validate(in); err != nil {
		return domain.Account{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	acc := domain.Account{
		ID:       nextID(d.accounts),
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
		Name:     in.Name,
	}
	updated := make([]domain.Account, len(d.accounts), len(d.accounts)+1)
	copy(updated, d.accounts)
	updated = append(updated, acc)

	if err := store.Save(ctx, d.store, store.KeyAccounts, updated); err != nil {
		return domain.Account{}, fmt.Errorf("add account: %w", err)
	}
	d.accounts = updated

	d.logger.Info("account added",
		logx.String("event", "account_added"),
		logx.Int64("account_id", acc.ID),
		logx.String("role", string(acc.Role)),
	)
	return acc, nil
}

// List returns all accounts in insertion order.
func (d *Directory) List() []domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Account, len(d.accounts))
	copy(out, d.accounts)
	return out
}

// Get returns the account with id.
func (d *Directory) Get(id int64) (domain.Account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

// Couriers returns the accounts with the courier role.
func (d *Directory) Couriers() []domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Account, 0)
	for _, a := range d.accounts {
		if a.Role == domain.RoleCourier {
			out = append(out, a)
		}
	}
	return out
}

func validate(in domain.NewAccount) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return fmt.Errorf("%w: username is required", apperr.ErrInvalid)
	case strings.TrimSpace(in.Password) == "":
		return fmt.Errorf("%w: password is required", apperr.ErrInvalid)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	case !in.Role.Valid():
		return fmt.Errorf("%w: unknown role %q", apperr.ErrInvalid, in.Role)
	}
	return nil
}

func nextID(accounts []domain.Account) int64 {
	var max int64
	for _, a := range accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
