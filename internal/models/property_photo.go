package models

import "time"

type PropertyPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ImovelID uint     `gorm:"not null;index" json:"imovel_id"`
	Imovel   Property `gorm:"foreignKey:ImovelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL   string `gorm:"size:255;not null" json:"url"`
	Ordem int    `json:"ordem"`

	CreatedAt time.Time `json:"created_at"`
}

func (PropertyPhoto) TableName() string { return "fotos" }
