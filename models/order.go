package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Order is a customer's service request
type Order struct {
	ID              uint                              `gorm:"primaryKey" json:"id"`
	OrderNumber     string                            `gorm:"uniqueIndex;not null" json:"order_number"` // OH-YYMMDD-NNNN
	FirstName       string                            `gorm:"not null" json:"first_name"`
	LastName        string                            `gorm:"not null" json:"last_name"`
	Phone           string                            `gorm:"not null" json:"phone"`
	Email           string                            `gorm:"not null" json:"email"`
	ServiceType     ServiceType                       `gorm:"type:varchar(32);not null;index" json:"service_type"`
	ServiceDetails  datatypes.JSONMap                 `json:"service_details"`
	CalculatedCosts datatypes.JSONType[CostBreakdown] `gorm:"not null" json:"calculated_costs"`
	TotalCost       *float64                          `json:"total_cost"` // nil while any component is TBD
	Status          OrderStatus                       `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Signature       string                            `gorm:"type:text" json:"signature,omitempty"` // data:image/... URL
	Files           []UploadedFile                    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"files"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// CustomerName joins first and last name
func (o *Order) CustomerName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Costs returns the stored cost breakdown
func (o *Order) Costs() CostBreakdown {
	costs := o.CalculatedCosts.Data()
	if costs == nil {
		return CostBreakdown{}
	}
	return costs
}

// SetCosts stores the breakdown and derives the total from it
func (o *Order) SetCosts(costs CostBreakdown) {
	if costs == nil {
		costs = CostBreakdown{}
	}
	o.CalculatedCosts = datatypes.NewJSONType(costs)
	o.TotalCost = costs.Total()
}

// CheckTotal verifies that TotalCost agrees with the breakdown
func (o *Order) CheckTotal() error {
	costs := o.Costs()
	want := costs.Total()
	switch {
	case want == nil && o.TotalCost != nil:
		return fmt.Errorf("total cost %v set while breakdown has undetermined components", *o.TotalCost)
	case want != nil && o.TotalCost == nil:
		return fmt.Errorf("total cost missing for fully priced breakdown")
	case want != nil && math.Abs(*want-*o.TotalCost) > 0.005:
		return fmt.Errorf("total cost %v does not match breakdown sum %v", *o.TotalCost, *want)
	}
	return nil
}
