package admin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shreepawar22/quickserve/internal/storage"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrNoSession     = errors.New("no admin is signed in")
)

// Repository maintains the admin credential collection and the current
// session record in the shared store.
type Repository interface {
	All() ([]Admin, error)
	ByUsername(username string) (*Admin, error)
	Append(a Admin) error
	Session() (*Session, error)
	SaveSession(s Session) error
	ClearSession() error
}

type storeRepository struct {
	mu    sync.Mutex
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) All() ([]Admin, error) {
	var admins []Admin
	err := r.store.Get(storage.KeyAdminCredentials, &admins)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []Admin{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("admin repository: failed to read credentials: %w", err)
	}
	return admins, nil
}

func (r *storeRepository) ByUsername(username string) (*Admin, error) {
	admins, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if admins[i].Username == username {
			return &admins[i], nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *storeRepository) Append(a Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins, err := r.All()
	if err != nil {
		return err
	}
	admins = append(admins, a)
	if err := r.store.Put(storage.KeyAdminCredentials, admins); err != nil {
		return fmt.Errorf("admin repository: failed to write credentials: %w", err)
	}
	return nil
}

func (r *storeRepository) Session() (*Session, error) {
	var s Session
	err := r.store.Get(storage.KeyCurrentAdmin, &s)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("admin repository: failed to read session: %w", err)
	}
	return &s, nil
}

func (r *storeRepository) SaveSession(s Session) error {
	if err := r.store.Put(storage.KeyCurrentAdmin, s); err != nil {
		return fmt.Errorf("admin repository: failed to write session: %w", err)
	}
	return nil
}

func (r *storeRepository) ClearSession() error {
	if err := r.store.Delete(storage.KeyCurrentAdmin); err != nil {
		return fmt.Errorf("admin repository: failed to clear session: %w", err)
	}
	return nil
}
