package deal

import (
	"context"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type UpdateTransactionInput struct {
	ID uint

	Status      *string
	ContratoURL *string

	CallerID   uint
	CallerRole string
}

type UpdateTransaction struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateTransaction(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateTransaction {
	return &UpdateTransaction{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateTransaction) Execute(
	ctx context.Context,
	in UpdateTransactionInput,
) (*models.Transaction, error) {

	t, err := uc.repo.GetTransaction(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// Apenas o corretor responsável ou admin podem atualizar
	if in.CallerRole != "admin" && in.CallerID != t.CorretorID {
		return nil, httperr.ErrBusiness("permissao_negada")
	}

	release := false
	action := "transacao_atualizada"

	if in.Status != nil {
		if !domain.ValidTransactionStatus(*in.Status) {
			return nil, httperr.ErrBusiness("status_invalido")
		}
		if *in.Status == string(domain.TransactionCancelado) &&
			t.Status != string(domain.TransactionCancelado) {
			release = true
			action = "transacao_cancelada"
		}
		t.Status = *in.Status
	}
	if in.ContratoURL != nil {
		t.ContratoURL = *in.ContratoURL
	}

	if err := uc.repo.UpdateTransaction(ctx, t, release); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   action,
		Entity:   "transacao",
		EntityID: &t.ID,
	})

	return t, nil
}
