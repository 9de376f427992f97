package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/order"
	"github.com/vegmart/vegmart/pkg/common"
)

// initEventSubscribers wires the order lifecycle topics to the audit log
// and, when configured, the confirmation mailer. Subscribers run outside
// the order transaction and must stay side effects only.
func (a *Application) initEventSubscribers() {
	subscribe := func(topic, action string) {
		err := a.bus.Subscribe(topic, func(o *domain.Order) {
			a.writeAudit(action, o)
		})
		if err != nil {
			zap.L().Error("failed to subscribe audit handler", zap.String("topic", topic), zap.Error(err))
		}
	}
	subscribe(order.TopicOrderCreated, "order.created")
	subscribe(order.TopicOrderClaimed, "order.claimed")
	subscribe(order.TopicOrderCompleted, "order.completed")
	subscribe(order.TopicOrderCancelled, "order.cancelled")

	if a.appConfig.Mail.Enabled {
		if err := a.bus.Subscribe(order.TopicOrderCreated, a.sendOrderConfirmation); err != nil {
			zap.L().Error("failed to subscribe mail handler", zap.Error(err))
		}
	}
}

func (a *Application) writeAudit(action string, o *domain.Order) {
	entry := domain.AuditLog{
		ID:      common.UUIDint64(),
		Actor:   fmt.Sprintf("customer:%d", o.CustomerId),
		Action:  action,
		Detail:  fmt.Sprintf("order %d total %s status %s", o.ID, o.TotalAmount.StringFixed(2), o.Status),
		OptTime: time.Now(),
	}
	if o.SalespersonId != nil {
		entry.Actor = fmt.Sprintf("salesperson:%d", *o.SalespersonId)
	}
	if err := a.gormDB.Create(&entry).Error; err != nil {
		zap.L().Error("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

// sendOrderConfirmation emails the customer on order creation. Failures
// are logged and swallowed; mail is best effort.
func (a *Application) sendOrderConfirmation(o *domain.Order) {
	var customer domain.User
	if err := a.gormDB.Where("id = ?", o.CustomerId).First(&customer).Error; err != nil || customer.Email == "" {
		return
	}

	cfg := a.appConfig.Mail
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", customer.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed", o.ID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nyour order #%d for %s has been received and is awaiting processing.\n",
		customer.FullName, o.ID, o.TotalAmount.StringFixed(2)))

	d := gomail.NewDialer(cfg.SmtpHost, cfg.SmtpPort, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Warn("failed to send order confirmation", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}
