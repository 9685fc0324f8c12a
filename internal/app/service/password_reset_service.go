package service

import (
	"errors"
	"time"

	"github.com/paragonmaik/accounts-api/internal/app/repository"
	"github.com/paragonmaik/accounts-api/pkg/logger"
	"github.com/paragonmaik/accounts-api/pkg/mailer"
	"github.com/paragonmaik/accounts-api/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(uid, token, password, password2 string) error
}

type passwordResetService struct {
	accountRepo repository.AccountRepository
	mail        mailer.Mailer
	secret      string
	tokenMaxAge time.Duration
	frontendURL string
}

func NewPasswordResetService(
	accountRepo repository.AccountRepository,
	mail mailer.Mailer,
	secret string,
	tokenMaxAge time.Duration,
	frontendURL string,
) PasswordResetService {
	return &passwordResetService{
		accountRepo: accountRepo,
		mail:        mail,
		secret:      secret,
		tokenMaxAge: tokenMaxAge,
		frontendURL: frontendURL,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	email = NormalizeEmail(email)

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	account, err := s.accountRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Succeed silently so the response never reveals whether the
			// email is registered
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		logger.Error("Failed to find account for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	uid := util.EncodeUID(account.ID)
	token := util.MakeResetToken(account.ID, account.PasswordHash, s.secret, time.Now())
	link := mailer.ResetLink(s.frontendURL, uid, token)

	subject, body := mailer.ComposeResetEmail(link)
	if err := s.mail.Send(account.Email, subject, body); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"account_id": account.ID,
			"email":      email,
		})
		return err
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"account_id": account.ID,
		"email":      email,
	})

	return nil
}

func (s *passwordResetService) ResetPassword(uid, token, password, password2 string) error {
	logger.Info("Processing password reset submission")

	if uid == "" || token == "" {
		logger.Warn("Password reset submitted without uid or token")
		return ErrInvalidResetToken
	}

	if password != password2 {
		logger.Warn("Password reset failed: passwords do not match")
		return ErrPasswordMismatch
	}

	accountID, err := util.DecodeUID(uid)
	if err != nil {
		logger.Warn("Password reset failed: malformed uid")
		return ErrInvalidResetToken
	}

	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset failed: account not found", map[string]interface{}{
				"account_id": accountID,
			})
			return ErrInvalidResetToken
		}
		logger.Error("Failed to find account for password reset", err, map[string]interface{}{
			"account_id": accountID,
		})
		return err
	}

	// The token is checked against the current password hash, so a token
	// already redeemed (or superseded by any password change) fails here.
	if err := util.CheckResetToken(token, account.ID, account.PasswordHash, s.secret, s.tokenMaxAge, time.Now()); err != nil {
		logger.Warn("Password reset failed: token rejected", map[string]interface{}{
			"account_id": account.ID,
			"reason":     err.Error(),
		})
		return ErrInvalidResetToken
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"account_id": account.ID,
		})
		return err
	}

	account.PasswordHash = hashedPassword
	if err := s.accountRepo.Update(account); err != nil {
		logger.Error("Failed to update account password", err, map[string]interface{}{
			"account_id": account.ID,
		})
		return err
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"account_id": account.ID,
		"email":      account.Email,
	})

	return nil
}
