package deal

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type UpdateContractInput struct {
	ID uint

	Status       *string
	Observacoes  *string
	DocumentoURL *string

	CallerID   uint
	CallerRole string
}

type UpdateContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateContract(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateContract {
	return &UpdateContract{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateContract) Execute(
	ctx context.Context,
	in UpdateContractInput,
) (*models.Contract, error) {

	ct, err := uc.repo.GetContract(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.CallerRole != "admin" && in.CallerID != ct.CorretorID {
		return nil, httperr.ErrBusiness("permissao_negada")
	}

	release := false
	action := "contrato_atualizado"

	if in.Status != nil {
		if !domain.ValidContractStatus(*in.Status) {
			return nil, httperr.ErrBusiness("status_invalido")
		}
		if *in.Status == string(domain.ContractCancelado) &&
			ct.Status != string(domain.ContractCancelado) {
			release = true
			action = "contrato_cancelado"
		}
		ct.Status = *in.Status
	}
	if in.Observacoes != nil {
		ct.Observacoes = *in.Observacoes
	}
	if in.DocumentoURL != nil {
		ct.DocumentoURL = *in.DocumentoURL
	}

	if err := uc.repo.UpdateContract(ctx, ct, release); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   action,
		Entity:   "contrato",
		EntityID: &ct.ID,
	})

	return ct, nil
}
