package visit

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/visit"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type UpdateVisitInput struct {
	ID uint

	Status      *string
	Observacoes *string

	CallerID   uint
	CallerRole string
}

type UpdateVisit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateVisit(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateVisit {
	return &UpdateVisit{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateVisit) Execute(
	ctx context.Context,
	in UpdateVisitInput,
) (*models.Visit, error) {

	v, err := uc.repo.GetVisit(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// Apenas admin ou o corretor responsável podem atualizar
	if in.CallerRole != "admin" && in.CallerID != v.CorretorID {
		return nil, httperr.ErrBusiness("permissao_negada")
	}

	// Confirmar a visita também respeita o limite de uma confirmada
	// por (corretor, data, hora); a checagem roda na transação da
	// escrita, dentro do repositório.
	checkSlot := false

	if in.Status != nil {
		if !domain.ValidStatus(*in.Status) {
			return nil, httperr.ErrBusiness("status_invalido")
		}

		checkSlot = *in.Status == string(domain.StatusConfirmado) &&
			v.Status != string(domain.StatusConfirmado)

		v.Status = *in.Status
	}
	if in.Observacoes != nil {
		v.Observacoes = *in.Observacoes
	}

	if err := uc.repo.UpdateVisit(ctx, v, checkSlot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   "agendamento_atualizado",
		Entity:   "agendamento",
		EntityID: &v.ID,
	})

	return v, nil
}
