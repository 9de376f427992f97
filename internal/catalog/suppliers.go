package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/pkg/common"
	"github.com/vegmart/vegmart/pkg/errs"
)

func (s *Service) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var sp domain.Supplier
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("supplier %d not found", id)
	} else if err != nil {
		return nil, errs.Internal(err, "query supplier %d", id)
	}
	return &sp, nil
}

func (s *Service) ListSuppliers(ctx context.Context, page, pageSize int) ([]domain.Supplier, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Supplier{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err, "count suppliers")
	}

	var rows []domain.Supplier
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errs.Internal(err, "query suppliers")
	}
	return rows, total, nil
}

func (s *Service) CreateSupplier(ctx context.Context, sp *domain.Supplier) error {
	if strings.TrimSpace(sp.Name) == "" {
		return errs.Validation("supplier name is required")
	}
	if sp.ID == 0 {
		sp.ID = common.UUIDint64()
	}
	now := time.Now()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(sp).Error; err != nil {
		return errs.Internal(err, "create supplier")
	}
	return nil
}

func (s *Service) UpdateSupplier(ctx context.Context, sp *domain.Supplier) error {
	if _, err := s.GetSupplier(ctx, sp.ID); err != nil {
		return err
	}
	if strings.TrimSpace(sp.Name) == "" {
		return errs.Validation("supplier name is required")
	}
	updates := map[string]interface{}{
		"name":         strings.TrimSpace(sp.Name),
		"contact_name": sp.ContactName,
		"phone":        sp.Phone,
		"email":        sp.Email,
		"address":      sp.Address,
		"remark":       sp.Remark,
		"updated_at":   time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&domain.Supplier{}).Where("id = ?", sp.ID).Updates(updates).Error; err != nil {
		return errs.Internal(err, "update supplier %d", sp.ID)
	}
	return nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Supplier{}).Error; err != nil {
		return errs.Internal(err, "delete supplier %d", id)
	}
	return nil
}
