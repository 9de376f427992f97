package app

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
)

// checkAdmin ensures the default administrator account exists.
func (a *Application) checkAdmin() {
	const adminUsername = "admin"
	const defaultPassword = "vegmart"

	var admin domain.User
	err := a.gormDB.Where("username = ?", adminUsername).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Username:  adminUsername,
			Password:  string(hash),
			FullName:  "Administrator",
			Role:      domain.RoleAdmin,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", adminUsername))
		}
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	}
}

// checkDemoCatalog seeds a small catalog on an empty database so a fresh
// install has something to sell.
func (a *Application) checkDemoCatalog() {
	defaultProducts := []domain.Product{
		{
			Name:            "Tomato",
			Category:        "vegetable",
			RetailPrice:     decimal.NewFromInt(40),
			WholesalePrice:  decimal.NewFromInt(30),
			MinWholesaleQty: 10,
			Stock:           100,
		},
		{
			Name:            "Potato",
			Category:        "vegetable",
			RetailPrice:     decimal.NewFromInt(25),
			WholesalePrice:  decimal.NewFromInt(18),
			MinWholesaleQty: 25,
			Stock:           250,
		},
		{
			Name:            "Onion",
			Category:        "vegetable",
			RetailPrice:     decimal.NewFromInt(35),
			WholesalePrice:  decimal.NewFromInt(28),
			MinWholesaleQty: 20,
			Stock:           180,
		},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
