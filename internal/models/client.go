package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList é persistida como texto JSON; a ordem dos itens é preservada.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("tipo inesperado para StringList: %T", src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Perfil de cliente, vinculado 1:1 ao usuário de login
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UsuarioID uint `gorm:"uniqueIndex;not null" json:"usuario_id"`
	Usuario   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BI             string     `gorm:"size:14;uniqueIndex;not null" json:"bi"`
	DataNascimento *time.Time `json:"data_nascimento"`

	Endereco string `gorm:"size:200" json:"endereco"`
	Bairro   string `gorm:"size:100" json:"bairro"`
	Cidade   string `gorm:"size:100" json:"cidade"`
	Estado   string `gorm:"size:2" json:"estado"`
	CEP      string `gorm:"size:9" json:"cep"`

	Profissao   string  `gorm:"size:100" json:"profissao"`
	RendaMensal float64 `json:"renda_mensal"`

	Interesse           string     `gorm:"size:20" json:"interesse"`
	TipoImovelInteresse StringList `gorm:"type:text" json:"tipo_imovel_interesse"`
	Observacoes         string     `gorm:"type:text" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clientes" }
