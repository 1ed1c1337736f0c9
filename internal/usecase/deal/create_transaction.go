package deal

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	propdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/property"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateTransactionInput struct {
	ImovelID   uint
	ClienteID  uint
	CorretorID uint // sempre da identidade autenticada

	Tipo  string
	Valor float64

	DataInicio  string
	DataFim     *string
	ContratoURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTransaction struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateTransaction(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateTransaction {
	return &CreateTransaction{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateTransaction) Execute(
	ctx context.Context,
	in CreateTransactionInput,
) (*models.Transaction, error) {

	if !propdomain.ValidFinalidade(in.Tipo) {
		return nil, httperr.ErrBusiness("tipo_invalido")
	}
	if in.Valor <= 0 {
		return nil, httperr.ErrBusiness("valor_invalido")
	}
	if in.DataInicio == "" {
		return nil, httperr.ErrBusiness("data_inicio_obrigatoria")
	}

	t := &models.Transaction{
		ImovelID:    in.ImovelID,
		ClienteID:   in.ClienteID,
		CorretorID:  in.CorretorID,
		Tipo:        in.Tipo,
		Valor:       in.Valor,
		Status:      string(domain.TransactionPendente),
		DataInicio:  in.DataInicio,
		DataFim:     in.DataFim,
		ContratoURL: in.ContratoURL,
	}

	// A checagem de disponibilidade e a virada do status do imóvel
	// acontecem na mesma transação, com a linha travada; em disputa
	// o primeiro grava e o segundo recebe imovel_indisponivel.
	if err := uc.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CorretorID,
		Action:   "transacao_criada",
		Entity:   "transacao",
		EntityID: &t.ID,
	})

	return t, nil
}
