package deal

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	propdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/property"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type CreateContractInput struct {
	ImovelID   uint
	ClienteID  uint
	CorretorID uint

	Tipo  string
	Valor float64

	DataInicio  string
	DataFim     *string
	Observacoes string
}

type CreateContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateContract(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateContract {
	return &CreateContract{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateContract) Execute(
	ctx context.Context,
	in CreateContractInput,
) (*models.Contract, error) {

	if !propdomain.ValidFinalidade(in.Tipo) {
		return nil, httperr.ErrBusiness("tipo_invalido")
	}
	if in.Valor <= 0 {
		return nil, httperr.ErrBusiness("valor_invalido")
	}
	if in.DataInicio == "" {
		return nil, httperr.ErrBusiness("data_inicio_obrigatoria")
	}

	ct := &models.Contract{
		ImovelID:    in.ImovelID,
		ClienteID:   in.ClienteID,
		CorretorID:  in.CorretorID,
		Tipo:        in.Tipo,
		Valor:       in.Valor,
		Status:      string(domain.ContractPendente),
		DataInicio:  in.DataInicio,
		DataFim:     in.DataFim,
		Observacoes: in.Observacoes,
	}

	if err := uc.repo.CreateContract(ctx, ct); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CorretorID,
		Action:   "contrato_criado",
		Entity:   "contrato",
		EntityID: &ct.ID,
	})

	return ct, nil
}
