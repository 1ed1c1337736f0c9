package visit

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type Repository interface {
	// -------- Referências --------
	GetProperty(
		ctx context.Context,
		id uint,
	) (*models.Property, error)

	GetBroker(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Visit --------
	GetVisit(
		ctx context.Context,
		id uint,
	) (*models.Visit, error)

	// CreateVisit grava a visita; recusa com horario_indisponivel se o
	// corretor já tem visita confirmada no mesmo (data, hora). Checagem
	// e escrita acontecem na mesma transação.
	CreateVisit(
		ctx context.Context,
		v *models.Visit,
	) error

	// UpdateVisit salva a visita. Com checkSlot a mesma checagem de
	// horário da criação roda na transação, ignorando a própria linha.
	UpdateVisit(
		ctx context.Context,
		v *models.Visit,
		checkSlot bool,
	) error
}
