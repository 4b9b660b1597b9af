package admin

import (
	"database/sql"
	"errors"
	"sync"
)

// Admin is the single back-office account. Password is stored as a
// bcrypt hash only.
type Admin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

var (
	ErrNotFound = errors.New("admin not found")
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Repository interface {
	GetByEmail(email string) (Admin, error)
}

// Seed builds the single-account seed for database-less runs. Both the
// email and the bcrypt hash must be set; otherwise there is no account
// and login stays unavailable.
func Seed(email, passwordHash string) []Admin {
	if email == "" || passwordHash == "" {
		return nil
	}
	return []Admin{{ID: "1", Email: email, PasswordHash: passwordHash}}
}

// InMemoryRepository is used for tests and database-less runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	admins []Admin
}

func NewInMemoryRepository(seed []Admin) *InMemoryRepository {
	r := &InMemoryRepository{admins: make([]Admin, 0, len(seed))}
	r.admins = append(r.admins, seed...)
	return r
}

func (r *InMemoryRepository) GetByEmail(email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(email string) (Admin, error) {
	var a Admin
	err := r.db.QueryRow(`SELECT id, email, password_hash FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, err
	}
	return a, nil
}
