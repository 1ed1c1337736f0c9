package visit

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	propdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/property"
	domain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/visit"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateVisitInput struct {
	ImovelID   uint
	CorretorID uint
	ClienteID  uint // da identidade autenticada

	Data string
	Hora string

	Observacoes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateVisit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateVisit(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateVisit {
	return &CreateVisit{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateVisit) Execute(
	ctx context.Context,
	in CreateVisitInput,
) (*models.Visit, error) {

	// 1. Imóvel precisa existir e estar disponível
	p, err := uc.repo.GetProperty(ctx, in.ImovelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("imovel_nao_encontrado")
		}
		return nil, err
	}
	if p.Status != string(propdomain.StatusDisponivel) {
		return nil, httperr.ErrBusiness("imovel_indisponivel")
	}

	// 2. Corretor precisa existir e ser corretor
	broker, err := uc.repo.GetBroker(ctx, in.CorretorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("corretor_nao_encontrado")
		}
		return nil, err
	}
	if broker.Tipo != "corretor" {
		return nil, httperr.ErrBusiness("corretor_nao_encontrado")
	}

	v := &models.Visit{
		ImovelID:    in.ImovelID,
		ClienteID:   in.ClienteID,
		CorretorID:  in.CorretorID,
		Data:        in.Data,
		Hora:        in.Hora,
		Status:      string(domain.InitialStatus()),
		Observacoes: in.Observacoes,
	}

	// O repositório checa, na mesma transação da escrita, o limite de
	// uma visita confirmada por (corretor, data, hora).
	if err := uc.repo.CreateVisit(ctx, v); err != nil {
		if httperr.IsBusiness(err, "horario_indisponivel") {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.ClienteID,
				Action: "agendamento_conflito",
				Entity: "agendamento",
				Metadata: map[string]any{
					"corretor_id": in.CorretorID,
					"data":        in.Data,
					"hora":        in.Hora,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClienteID,
		Action:   "agendamento_criado",
		Entity:   "agendamento",
		EntityID: &v.ID,
	})

	return v, nil
}
