package model

import "time"

const (
	AssetTypeStock  = "STOCK"
	AssetTypeCrypto = "CRYPTO"
)

type Asset struct {
	ID        uint      `gorm:"primarykey"`
	Symbol    string    `gorm:"not null;uniqueIndex"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

type GetAssetsParam struct {
	Symbols []string
	Type    string
}
