package repository

import (
	"strings"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

// Collection key carried over from the browser prototype so existing stores
// keep working.
const usersKey = "lammatna_users"

// UserRepository persists the user collection. Every mutation is a whole
// collection load, in-memory change, and overwrite.
type UserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := store.LoadCollection(r.store, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SaveAll(users []models.User) error {
	return store.SaveCollection(r.store, usersKey, users)
}

// GetByEmail looks a user up by normalized email. Returns ErrNotFound when
// absent.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	users, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// EmailExists reports whether another user already holds email. excludeEmail
// skips the caller's own record during profile edits.
func (r *UserRepository) EmailExists(email, excludeEmail string) (bool, error) {
	users, err := r.GetAll()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Email == excludeEmail {
			continue
		}
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// UsernameExists is the case-insensitive username counterpart of EmailExists.
func (r *UserRepository) UsernameExists(username, excludeEmail string) (bool, error) {
	users, err := r.GetAll()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Email == excludeEmail {
			continue
		}
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

// Create appends the user and persists the collection immediately.
func (r *UserRepository) Create(user *models.User) error {
	users, err := r.GetAll()
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.SaveAll(users)
}

// Update replaces the record currently keyed by currentEmail. The email field
// itself may change as part of the update.
func (r *UserRepository) Update(currentEmail string, user models.User) error {
	users, err := r.GetAll()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == currentEmail {
			users[i] = user
			return r.SaveAll(users)
		}
	}
	return models.ErrNotFound
}
