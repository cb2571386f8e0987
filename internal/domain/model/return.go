package model

import "time"

type ReturnStatus string

const (
	ReturnStatusPending    ReturnStatus = "pending"
	ReturnStatusApproved   ReturnStatus = "approved"
	ReturnStatusRejected   ReturnStatus = "rejected"
	ReturnStatusProcessing ReturnStatus = "processing"
	ReturnStatusCompleted  ReturnStatus = "completed"
)

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected,
		ReturnStatusProcessing, ReturnStatusCompleted:
		return true
	}
	return false
}

// 返品申請。(order_id, user_id) で一意
type Return struct {
	ID        string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID   string       `gorm:"type:varchar(36);not null;uniqueIndex:uq_returns_order_user,priority:1" json:"order_id"`
	UserID    string       `gorm:"type:varchar(36);not null;uniqueIndex:uq_returns_order_user,priority:2;index" json:"user_id"`
	Reason    string       `gorm:"type:text;not null" json:"reason"`
	Status    ReturnStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}
