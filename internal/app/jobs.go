package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vegmart/vegmart/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		// Audit rows older than a year are pruned.
		a.gormDB.
			Where("opt_time < ?", time.Now().Add(-time.Hour*24*365)).
			Delete(&domain.AuditLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.pruneAbandonedCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// pruneAbandonedCarts drops cart lines untouched for 30 days. Carts never
// hold stock, so pruning has no inventory effect.
func (a *Application) pruneAbandonedCarts() {
	cutoff := time.Now().Add(-30 * 24 * time.Hour)

	var stale []domain.Cart
	if err := a.gormDB.Where("updated_at < ?", cutoff).Find(&stale).Error; err != nil {
		zap.L().Error("failed to query stale carts", zap.Error(err))
		return
	}
	for _, c := range stale {
		if err := a.gormDB.Where("cart_id = ?", c.ID).Delete(&domain.CartItem{}).Error; err != nil {
			zap.L().Error("failed to prune cart items", zap.Int64("cart_id", c.ID), zap.Error(err))
			continue
		}
	}
	if len(stale) > 0 {
		zap.L().Info("pruned abandoned carts", zap.Int("count", len(stale)))
	}
}
