package domain

import "time"

// User roles. The workflow engine trusts the authenticated actor context
// derived from this record for authorization and wholesale eligibility.
const (
	RoleAdmin       = "ADMIN"
	RoleSalesperson = "SALESPERSON"
	RoleCustomer    = "CUSTOMER"
)

type User struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username" form:"username"`
	Password  string    `json:"-" form:"-"`
	FullName  string    `json:"full_name" form:"full_name"`
	Phone     string    `json:"phone" form:"phone"`
	Email     string    `json:"email" form:"email"`
	Role      string    `gorm:"size:16;index" json:"role" form:"role"`
	Wholesale bool      `json:"wholesale" form:"wholesale"`
	Status    string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// AuditLog records workflow events (order created/claimed/completed) for
// the admin activity view. Written by the event bus subscriber.
type AuditLog struct {
	ID        int64     `json:"id,string"`
	Actor     string    `json:"actor"`
	Action    string    `gorm:"index" json:"action"`
	Detail    string    `gorm:"size:2048" json:"detail"`
	OptTime   time.Time `gorm:"index" json:"opt_time"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
