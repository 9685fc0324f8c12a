package service

import (
	"errors"
	"strings"
	"time"

	"github.com/paragonmaik/accounts-api/internal/app/model"
	"github.com/paragonmaik/accounts-api/internal/app/repository"
	"github.com/paragonmaik/accounts-api/pkg/logger"
	"github.com/paragonmaik/accounts-api/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type AccountService interface {
	Register(email, password, password2, name string, termsAccepted, isAdmin bool) (*model.Account, *util.TokenPair, error)
	Login(email, password string) (*model.Account, *util.TokenPair, error)
	ChangePassword(accountID uint, password, password2 string) error
	GetAccountByID(id uint) (*model.Account, error)
}

type accountService struct {
	accountRepo   repository.AccountRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AccountService {
	return &accountService{
		accountRepo:   accountRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *accountService) Register(email, password, password2, name string, termsAccepted, isAdmin bool) (*model.Account, *util.TokenPair, error) {
	email = NormalizeEmail(email)

	logger.Info("Attempting account registration", map[string]interface{}{
		"email": email,
		"name":  name,
		"admin": isAdmin,
	})

	if password != password2 {
		logger.Warn("Registration failed: passwords do not match", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrPasswordMismatch
	}

	// Fast-path duplicate check; the unique index on email is what actually
	// guarantees exactly one winner under concurrent registration.
	existing, err := s.accountRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing account", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	account := &model.Account{
		Email:         email,
		Name:          name,
		PasswordHash:  hashedPassword,
		TermsAccepted: termsAccepted,
		IsActive:      true,
		IsAdmin:       isAdmin,
	}

	if err := s.accountRepo.Create(account); err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Registration lost a uniqueness race", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrEmailAlreadyExists
		}
		logger.Error("Failed to create account in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		account.ID,
		account.Email,
		account.Role(),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"account_id": account.ID,
			"email":      email,
		})
		return nil, nil, err
	}

	logger.Info("Account registered successfully", map[string]interface{}{
		"account_id": account.ID,
		"email":      email,
		"role":       account.Role(),
	})

	return account, tokens, nil
}

func (s *accountService) Login(email, password string) (*model.Account, *util.TokenPair, error) {
	email = NormalizeEmail(email)

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	account, err := s.accountRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: account not found", map[string]interface{}{
				"email": email,
			})
			// Same error as a wrong password, to avoid user enumeration
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find account", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !account.IsActive {
		logger.Warn("Login failed: account is deactivated", map[string]interface{}{
			"email":      email,
			"account_id": account.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	if !util.VerifyPassword(account.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":      email,
			"account_id": account.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		account.ID,
		account.Email,
		account.Role(),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"account_id": account.ID,
			"email":      email,
		})
		return nil, nil, err
	}

	logger.Info("Account logged in successfully", map[string]interface{}{
		"account_id": account.ID,
		"email":      email,
	})

	return account, tokens, nil
}

func (s *accountService) ChangePassword(accountID uint, password, password2 string) error {
	logger.Info("Attempting password change", map[string]interface{}{
		"account_id": accountID,
	})

	if password != password2 {
		logger.Warn("Password change failed: passwords do not match", map[string]interface{}{
			"account_id": accountID,
		})
		return ErrPasswordMismatch
	}

	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		logger.Error("Failed to fetch account for password change", err, map[string]interface{}{
			"account_id": accountID,
		})
		return err
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"account_id": accountID,
		})
		return err
	}

	// Existing access tokens stay valid until natural expiry; outstanding
	// reset tokens are invalidated because the codec is keyed on the hash.
	account.PasswordHash = hashedPassword
	if err := s.accountRepo.Update(account); err != nil {
		logger.Error("Failed to update account password", err, map[string]interface{}{
			"account_id": accountID,
		})
		return err
	}

	logger.Info("Password changed successfully", map[string]interface{}{
		"account_id": accountID,
	})

	return nil
}

func (s *accountService) GetAccountByID(id uint) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		logger.Error("Failed to fetch account", err, map[string]interface{}{
			"account_id": id,
		})
		return nil, err
	}
	return account, nil
}

// NormalizeEmail lowercases and trims an address so the unique index treats
// case variants as the same login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isUniqueViolation matches the duplicate-key errors surfaced by postgres
// and by sqlite in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
