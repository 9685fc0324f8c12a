package repository

import (
	"github.com/paragonmaik/accounts-api/internal/app/model"
	"github.com/paragonmaik/accounts-api/pkg/logger"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *model.Account) error
	FindByID(id uint) (*model.Account, error)
	FindByEmail(email string) (*model.Account, error)
	Update(account *model.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	logger.Debug("Creating account in database", map[string]interface{}{
		"email": account.Email,
	})

	if err := r.db.Create(account).Error; err != nil {
		logger.Error("Failed to create account in database", err, map[string]interface{}{
			"email": account.Email,
		})
		return err
	}

	logger.Debug("Account created in database", map[string]interface{}{
		"account_id": account.ID,
		"email":      account.Email,
	})
	return nil
}

func (r *accountRepository) FindByID(id uint) (*model.Account, error) {
	logger.Debug("Finding account by ID in database", map[string]interface{}{
		"account_id": id,
	})

	var account model.Account
	if err := r.db.First(&account, id).Error; err != nil {
		logger.Error("Failed to find account by ID in database", err, map[string]interface{}{
			"account_id": id,
		})
		return nil, err
	}

	return &account, nil
}

func (r *accountRepository) FindByEmail(email string) (*model.Account, error) {
	logger.Debug("Finding account by email in database", map[string]interface{}{
		"email": email,
	})

	var account model.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		logger.Error("Failed to find account by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	return &account, nil
}

func (r *accountRepository) Update(account *model.Account) error {
	logger.Debug("Updating account in database", map[string]interface{}{
		"account_id": account.ID,
		"email":      account.Email,
	})

	if err := r.db.Save(account).Error; err != nil {
		logger.Error("Failed to update account in database", err, map[string]interface{}{
			"account_id": account.ID,
			"email":      account.Email,
		})
		return err
	}

	return nil
}
