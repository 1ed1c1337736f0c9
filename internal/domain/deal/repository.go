package deal

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

// Repository executa as operações de contrato/transação que mexem no
// status do imóvel. As operações Create* e as que revertem o imóvel
// são atômicas: checagem de disponibilidade, escrita do negócio e
// mudança de status acontecem na mesma transação de banco, com a
// linha do imóvel travada.
type Repository interface {
	// -------- Transação --------
	GetTransaction(
		ctx context.Context,
		id uint,
	) (*models.Transaction, error)

	CreateTransaction(
		ctx context.Context,
		t *models.Transaction,
	) error

	UpdateTransaction(
		ctx context.Context,
		t *models.Transaction,
		releaseProperty bool,
	) error

	DeleteTransaction(
		ctx context.Context,
		id uint,
	) (bool, error)

	// -------- Contrato --------
	GetContract(
		ctx context.Context,
		id uint,
	) (*models.Contract, error)

	CreateContract(
		ctx context.Context,
		ct *models.Contract,
	) error

	UpdateContract(
		ctx context.Context,
		ct *models.Contract,
		releaseProperty bool,
	) error

	// DeleteContract remove o contrato e devolve o imóvel para
	// disponivel na mesma transação.
	DeleteContract(
		ctx context.Context,
		id uint,
	) (bool, error)
}
