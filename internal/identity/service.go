// Package identity manages user accounts and the authenticated actor
// context the workflow engine trusts for authorization gates and
// wholesale pricing eligibility.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validRole(role string) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleSalesperson, domain.RoleCustomer:
		return true
	}
	return false
}

// Register creates a user account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password, fullName, role string, wholesale bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.Validation("username is required")
	}
	if len(password) < 6 {
		return nil, errs.Validation("password must be at least 6 characters")
	}
	if !validRole(role) {
		return nil, errs.Validation("unknown role %q", role)
	}

	var dup domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&dup).Error; err == nil {
		return nil, errs.Validation("username %q already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err, "hash password")
	}

	now := time.Now()
	u := domain.User{
		ID:        common.UUIDint64(),
		Username:  username,
		Password:  string(hash),
		FullName:  fullName,
		Role:      role,
		Wholesale: wholesale,
		Status:    common.ENABLED,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, errs.Internal(err, "create user")
	}
	zap.L().Info("user registered", zap.Int64("id", u.ID), zap.String("username", username), zap.String("role", role))
	return &u, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Unauthorized("invalid username or password")
	} else if err != nil {
		return nil, errs.Internal(err, "query user %q", username)
	}
	if u.Status != common.ENABLED {
		return nil, errs.Unauthorized("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errs.Unauthorized("invalid username or password")
	}

	s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Update("last_login", time.Now())
	return &u, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user %d not found", id)
	} else if err != nil {
		return nil, errs.Internal(err, "query user %d", id)
	}
	return &u, nil
}

func (s *Service) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.User, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err, "count users")
	}

	var rows []domain.User
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errs.Internal(err, "query users")
	}
	return rows, total, nil
}
