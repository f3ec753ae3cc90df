// Package model holds the gorm models mapped onto the retail sales schema.
// The retail_sales table is owned by the warehouse pipeline; this service
// reads it and, through the ingest path, appends to it.
package model

import "time"

// Sale is one retail transaction.
type Sale struct {
	TransactionID int64     `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	SaleDate      time.Time `gorm:"column:sale_date;type:date;index"`
	SaleTime      string    `gorm:"column:sale_time"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	Gender        string    `gorm:"column:gender;size:16"`
	Age           int32     `gorm:"column:age"`
	Category      string    `gorm:"column:category;size:64;index"`
	Quantity      int32     `gorm:"column:quantity"`
	PricePerUnit  float64   `gorm:"column:price_per_unit"`
	COGS          float64   `gorm:"column:cogs"`
	TotalSale     float64   `gorm:"column:total_sale"`
}

// TableName implements gorm's Tabler.
func (Sale) TableName() string {
	return "retail_sales"
}
