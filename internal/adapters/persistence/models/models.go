package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/core/domain"
)

// User represents the users table. Admins and Sub-Admins leave the
// distributor-only columns (party_code, mobile, route) NULL.
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Email          string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string          `gorm:"size:255;not null" json:"-"`
	Role           domain.Role     `gorm:"size:20;not null" json:"role"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedBy      *uint           `gorm:"index" json:"created_by,omitempty"`
	PartyCode      *string         `gorm:"uniqueIndex;size:20" json:"party_code,omitempty"`
	Mobile         *string         `gorm:"size:20" json:"mobile,omitempty"`
	Route          *string         `gorm:"size:100" json:"route,omitempty"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"opening_balance"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSafeView is the outward representation of a user. It never carries
// the password hash.
type UserSafeView struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           domain.Role     `json:"role"`
	IsActive       bool            `json:"is_active"`
	CreatedBy      *uint           `json:"created_by,omitempty"`
	PartyCode      *string         `json:"party_code,omitempty"`
	Mobile         *string         `json:"mobile,omitempty"`
	Route          *string         `json:"route,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToSafeView strips the password hash from the user record
func (u *User) ToSafeView() *UserSafeView {
	return &UserSafeView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedBy:      u.CreatedBy,
		PartyCode:      u.PartyCode,
		Mobile:         u.Mobile,
		Route:          u.Route,
		OpeningBalance: u.OpeningBalance,
		CreatedAt:      u.CreatedAt,
	}
}

// Product represents the products table
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProductCode string          `gorm:"uniqueIndex;size:30;not null" json:"product_code"`
	ProductName string          `gorm:"size:100;not null" json:"product_name"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rate"`
	Gst         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst"`
	Unit        string          `gorm:"size:20" json:"unit"`
	Crate       int             `gorm:"default:0" json:"crate"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPrice is a distributor-specific price override. At most one row
// exists per (distributor, product) pair.
type ProductPrice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DistributorID uint            `gorm:"not null;uniqueIndex:idx_distributor_product" json:"distributor_id"`
	ProductID     uint            `gorm:"not null;uniqueIndex:idx_distributor_product" json:"product_id"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProductPrice) TableName() string {
	return "product_prices"
}

// Demand statuses
const (
	DemandStatusCreated    = "created"
	DemandStatusDispatched = "dispatched"
)

// Demand is one ledger line: a quantity of one product ordered by a
// distributor on a given date/reference number. Amount, gst_amt and total
// are snapshots computed at creation time and never recomputed.
type Demand struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Date          time.Time        `gorm:"index;not null" json:"date"`
	Rno           string           `gorm:"size:50;not null" json:"rno"`
	DistributorID uint             `gorm:"index;not null" json:"distributor_id"`
	ProductID     uint             `gorm:"index;not null" json:"product_id"`
	Qty           decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"qty"`
	Rate          decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"rate"`
	Amount        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
	GstPercent    decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"gst_percent"`
	GstAmt        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"gst_amt"`
	Total         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"`
	DispatchQty   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"dispatch_qty,omitempty"`
	DispatchDate  *time.Time       `json:"dispatch_date,omitempty"`
	DispatchNo    *string          `gorm:"size:50" json:"dispatch_no,omitempty"`
	GatePassNo    *string          `gorm:"size:50" json:"gate_pass_no,omitempty"`
	VehicleNo     *string          `gorm:"size:30" json:"vehicle_no,omitempty"`
	Status        string           `gorm:"size:20;default:'created'" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Demand) TableName() string {
	return "demand_dispatch"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Product{},
		&ProductPrice{},
		&Demand{},
	)
}
