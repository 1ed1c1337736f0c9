package models

import "time"

type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ImovelID uint     `gorm:"not null" json:"imovel_id"`
	Imovel   Property `gorm:"foreignKey:ImovelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClienteID uint `gorm:"not null" json:"cliente_id"`
	Cliente   User `gorm:"foreignKey:ClienteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CorretorID uint `gorm:"not null" json:"corretor_id"`
	Corretor   User `gorm:"foreignKey:CorretorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Tipo  string  `gorm:"size:20;not null" json:"tipo"`
	Valor float64 `gorm:"not null" json:"valor"`

	Status string `gorm:"size:20;default:'pendente'" json:"status"`

	DataInicio string  `gorm:"size:10;not null" json:"data_inicio"`
	DataFim    *string `gorm:"size:10" json:"data_fim"`

	ContratoURL string `gorm:"type:text" json:"contrato_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Transaction) TableName() string { return "transacoes" }
