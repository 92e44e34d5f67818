package model

import "time"

// Order 外部订单事件，按 order_number 去重，只插入不更新
type Order struct {
	ID             uint64    `gorm:"primaryKey"`
	OrderNumber    string    `gorm:"size:64;not null;uniqueIndex:idx_order_number" json:"orderNumber"`
	OrderPaidDate  time.Time `gorm:"type:date;not null;index:idx_orders_paid_date" json:"orderPaidDate"`
	Subtotal       float64   `gorm:"not null;default:0" json:"subtotal"`
	TipTotal       float64   `gorm:"not null;default:0" json:"tipTotal"`
	SalesAssociate *string   `gorm:"size:128" json:"salesAssociate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Order) TableName() string {
	return "orders"
}
