package model

import "time"

type ProductType string

const (
	ProductTypeWine        ProductType = "wine"
	ProductTypeLiquor      ProductType = "liquor"
	ProductTypeMerchandise ProductType = "merchandise"
)

type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// 商品マスタ。価格は product_prices に分離して履歴管理する。
type Product struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	ProductType ProductType `gorm:"type:varchar(20);not null;index" json:"product_type"`

	//仕入れ先（任意）
	SupplierID *string `gorm:"type:uuid" json:"supplier_id"`
	ImageURL   string  `gorm:"type:text" json:"image_url"`

	//アルコール度数（%）。merchandiseはnull。
	ABV *float64 `gorm:"column:abv" json:"abv"`
	//容量（ml）
	VolumeML *int64 `gorm:"column:volume_ml" json:"volume_ml"`

	StockQuantity int64        `gorm:"not null;default:0" json:"stock_quantity"`
	Availability  Availability `gorm:"type:varchar(20);not null;default:'in_stock';index" json:"availability"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
