package models

import "time"

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Tipo       string  `gorm:"size:50;not null" json:"tipo"`
	Finalidade string  `gorm:"size:20;not null" json:"finalidade"`
	Preco      float64 `gorm:"not null" json:"preco"`

	Cidade      string `gorm:"size:100;not null" json:"cidade"`
	Bairro      string `gorm:"size:100;not null" json:"bairro"`
	Rua         string `gorm:"size:200;not null" json:"rua"`
	Numero      string `gorm:"size:20" json:"numero"`
	Complemento string `gorm:"size:100" json:"complemento"`
	CEP         string `gorm:"size:9" json:"cep"`

	Metragem  float64 `gorm:"not null" json:"metragem"`
	Vagas     int     `json:"vagas"`
	Quartos   int     `json:"quartos"`
	Banheiros int     `json:"banheiros"`

	Descricao string `gorm:"type:text" json:"descricao"`
	Status    string `gorm:"size:20;default:'disponivel'" json:"status"`
	Destaque  bool   `gorm:"default:false" json:"destaque"`
	Imagem    string `gorm:"size:255" json:"imagem"`

	CorretorID uint `gorm:"not null" json:"corretor_id"`
	Corretor   User `gorm:"foreignKey:CorretorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Property) TableName() string { return "imoveis" }
