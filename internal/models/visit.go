package models

import "time"

// Agendamento de visita a um imóvel
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ImovelID uint     `gorm:"not null" json:"imovel_id"`
	Imovel   Property `gorm:"foreignKey:ImovelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClienteID uint `gorm:"not null" json:"cliente_id"`
	Cliente   User `gorm:"foreignKey:ClienteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CorretorID uint `gorm:"not null" json:"corretor_id"`
	Corretor   User `gorm:"foreignKey:CorretorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Data string `gorm:"size:10;not null" json:"data"`
	Hora string `gorm:"size:5;not null" json:"hora"`

	Status      string `gorm:"size:20;default:'pendente'" json:"status"`
	Observacoes string `gorm:"type:text" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Visit) TableName() string { return "agendamentos" }
