package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in_progress"
	StatusReady      OrderStatus = "ready"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Order is a self-contained snapshot: product and option names are
// denormalized at creation time, so later menu edits never change it.
type Order struct {
	ID          uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64       `json:"userId" gorm:"not null;index"`
	Address     string      `json:"address" gorm:"size:255"`
	ProductName string      `json:"productName" gorm:"size:100"`
	Volume      string      `json:"volume" gorm:"size:50"`
	Quantity    int         `json:"quantity" gorm:"not null"`
	MilkName    string      `json:"milkName,omitempty" gorm:"size:100"`
	SyrupName   string      `json:"syrupName,omitempty" gorm:"size:100"`
	PickupTime  string      `json:"pickupTime" gorm:"size:5"` // "HH:MM"
	TotalPrice  int64       `json:"totalPrice" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"size:20;default:'pending'"`
	IsCompleted bool        `json:"isCompleted" gorm:"not null;default:false"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}
