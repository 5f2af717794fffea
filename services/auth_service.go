package services

import (
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a customer or provider account. Admin accounts come from
// seeding only.
func (s *AuthService) Register(email, password, firstName, lastName, phone, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "email and password are required")
	}

	switch role {
	case "":
		role = entity.RoleCustomer
	case entity.RoleCustomer, entity.RoleProvider:
	default:
		return nil, apperr.Newf(apperr.KindValidation, "cannot register with role %q", role)
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.KindValidation, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "hash password failed", err)
	}

	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		PhoneNumber: strings.TrimSpace(phone),
		Role:        role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues the JWT the identity gate verifies.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, apperr.New(apperr.KindAuthentication, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindAuthentication, "invalid credentials")
	}
	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "cannot generate token", err)
	}
	return token, user, nil
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
