package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status values carried by the source dataset.
const (
	StatusActive       = "Active"
	StatusDiscontinued = "Discontinued"
	StatusBackordered  = "Backordered"
)

// InventoryRecord is one row of the grocery inventory snapshot. Column names
// mirror the source dataset so the sqlite table stays queryable with the
// original headers. Numeric fields that can be absent in the source are
// pointers; nil means unknown and propagates into the derived flags.
type InventoryRecord struct {
	ProductID             string          `gorm:"column:Product_ID;primaryKey" json:"product_id"`
	ProductName           string          `gorm:"column:Product_Name" json:"product_name"`
	Category              *string         `gorm:"column:Category" json:"category"`
	SupplierName          string          `gorm:"column:Supplier_Name" json:"supplier_name"`
	SupplierID            string          `gorm:"column:Supplier_ID" json:"supplier_id"`
	UnitPrice             decimal.Decimal `gorm:"column:Unit_Price;type:decimal(10,2)" json:"unit_price"`
	StockQuantity         *int            `gorm:"column:Stock_Quantity" json:"stock_quantity"`
	ReorderLevel          *int            `gorm:"column:Reorder_Level" json:"reorder_level"`
	ReorderQuantity       *int            `gorm:"column:Reorder_Quantity" json:"reorder_quantity"`
	SalesVolume           *float64        `gorm:"column:Sales_Volume" json:"sales_volume"`
	Percentage            *float64        `gorm:"column:Percentage" json:"percentage"`
	Status                string          `gorm:"column:Status" json:"status"`
	DateReceived          *time.Time      `gorm:"column:Date_Received" json:"date_received"`
	LastOrderDate         *time.Time      `gorm:"column:Last_Order_Date" json:"last_order_date"`
	ExpirationDate        *time.Time      `gorm:"column:Expiration_Date" json:"expiration_date"`
	InventoryTurnoverRate *float64        `gorm:"column:Inventory_Turnover_Rate" json:"inventory_turnover_rate"`

	// Derived fields. Never taken from the source; recomputed on every load.
	Revenue        *decimal.Decimal `gorm:"column:Revenue;type:decimal(14,2)" json:"revenue"`
	InventoryValue *decimal.Decimal `gorm:"column:Inventory_Value;type:decimal(14,2)" json:"inventory_value"`
	Discontinued   bool             `gorm:"column:Discontinued" json:"discontinued"`
	LowStock       *bool            `gorm:"column:Low_Stock" json:"low_stock"`
	Expired        *bool            `gorm:"column:Expired" json:"expired"`
	Restock        bool             `gorm:"column:Restock" json:"restock"`
}

func (InventoryRecord) TableName() string {
	return "grocery"
}

// CategoryName returns the category or an empty string when unknown.
func (r InventoryRecord) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return *r.Category
}
