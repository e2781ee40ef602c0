package services

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hmsdev/hms-backend/internal/auth/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account deactivated")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	DB *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{DB: db}
}

// Register creates a new user with a bcrypt-hashed password. The email must
// not already be in use.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	var existingID int64
	err := s.DB.QueryRow("SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
	if err == nil {
		return nil, ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "Staff"
	}
	department := req.Department
	if department == "" {
		department = "General"
	}

	now := time.Now()
	result, err := s.DB.Exec(`
		INSERT INTO users (name, email, password, role, department, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		req.Name, req.Email, string(hashed), role, department, now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		Department: department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Authenticate validates the login credentials and returns the user. A
// deactivated account is rejected even with a correct password.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.getByQuery("SELECT id, name, email, password, role, department, is_active, created_at, updated_at FROM users WHERE email = ?", email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// GetByID resolves a user record, typically from token claims.
func (s *AuthService) GetByID(id int64) (*models.User, error) {
	return s.getByQuery("SELECT id, name, email, password, role, department, is_active, created_at, updated_at FROM users WHERE id = ?", id)
}

func (s *AuthService) getByQuery(query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRow(query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Department,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
