package visit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	infraRepo "github.com/BruksfildServices01/imobiliaria-api/internal/infra/repository"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/testutil"
	visituc "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/visit"
)

type visitEnv struct {
	db       *gorm.DB
	create   *visituc.CreateVisit
	update   *visituc.UpdateVisit
	corretor models.User
	cliente  models.User
	imovel   models.Property
}

func setupVisitEnv(t *testing.T) *visitEnv {
	t.Helper()
	db := testutil.NewDB(t)

	repo := infraRepo.NewVisitGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	env := &visitEnv{
		db:       db,
		create:   visituc.NewCreateVisit(repo, dispatcher),
		update:   visituc.NewUpdateVisit(repo, dispatcher),
		corretor: models.User{Nome: "Ana", Email: "ana@imob.com", SenhaHash: "x", Tipo: "corretor"},
		cliente:  models.User{Nome: "Carlos", Email: "carlos@imob.com", SenhaHash: "x", Tipo: "cliente"},
	}
	require.NoError(t, db.Create(&env.corretor).Error)
	require.NoError(t, db.Create(&env.cliente).Error)

	env.imovel = models.Property{
		Tipo:       "apartamento",
		Finalidade: "aluguel",
		Preco:      2500,
		Cidade:     "Luanda",
		Bairro:     "Maianga",
		Rua:        "Rua B",
		Metragem:   80,
		Status:     "disponivel",
		CorretorID: env.corretor.ID,
	}
	require.NoError(t, db.Create(&env.imovel).Error)

	return env
}

func (e *visitEnv) newVisit(t *testing.T, data, hora string) *models.Visit {
	t.Helper()
	v, err := e.create.Execute(context.Background(), visituc.CreateVisitInput{
		ImovelID:   e.imovel.ID,
		CorretorID: e.corretor.ID,
		ClienteID:  e.cliente.ID,
		Data:       data,
		Hora:       hora,
	})
	require.NoError(t, err)
	return v
}

func (e *visitEnv) confirm(t *testing.T, id uint) {
	t.Helper()
	confirmado := "confirmado"
	_, err := e.update.Execute(context.Background(), visituc.UpdateVisitInput{
		ID:         id,
		Status:     &confirmado,
		CallerID:   e.corretor.ID,
		CallerRole: "corretor",
	})
	require.NoError(t, err)
}

func TestCreateVisitStartsPending(t *testing.T) {
	env := setupVisitEnv(t)

	v := env.newVisit(t, "2026-09-10", "14:00")
	assert.Equal(t, "pendente", v.Status)
}

func TestCreateVisitPropertyNotFound(t *testing.T) {
	env := setupVisitEnv(t)

	_, err := env.create.Execute(context.Background(), visituc.CreateVisitInput{
		ImovelID:   9999,
		CorretorID: env.corretor.ID,
		ClienteID:  env.cliente.ID,
		Data:       "2026-09-10",
		Hora:       "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "imovel_nao_encontrado"))
}

func TestCreateVisitUnavailableProperty(t *testing.T) {
	env := setupVisitEnv(t)
	require.NoError(t, env.db.Model(&env.imovel).Update("status", "vendido").Error)

	_, err := env.create.Execute(context.Background(), visituc.CreateVisitInput{
		ImovelID:   env.imovel.ID,
		CorretorID: env.corretor.ID,
		ClienteID:  env.cliente.ID,
		Data:       "2026-09-10",
		Hora:       "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "imovel_indisponivel"))
}

func TestCreateVisitBrokerMustBeBroker(t *testing.T) {
	env := setupVisitEnv(t)

	_, err := env.create.Execute(context.Background(), visituc.CreateVisitInput{
		ImovelID:   env.imovel.ID,
		CorretorID: env.cliente.ID,
		ClienteID:  env.cliente.ID,
		Data:       "2026-09-10",
		Hora:       "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "corretor_nao_encontrado"))
}

func TestConfirmedSlotBlocksNewVisit(t *testing.T) {
	env := setupVisitEnv(t)

	first := env.newVisit(t, "2026-09-10", "14:00")
	env.confirm(t, first.ID)

	_, err := env.create.Execute(context.Background(), visituc.CreateVisitInput{
		ImovelID:   env.imovel.ID,
		CorretorID: env.corretor.ID,
		ClienteID:  env.cliente.ID,
		Data:       "2026-09-10",
		Hora:       "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "horario_indisponivel"))

	// Outro horário segue livre
	v := env.newVisit(t, "2026-09-10", "15:00")
	assert.Equal(t, "pendente", v.Status)
}

func TestTwoPendingVisitsSameSlotAllowed(t *testing.T) {
	env := setupVisitEnv(t)

	env.newVisit(t, "2026-09-10", "14:00")
	v := env.newVisit(t, "2026-09-10", "14:00")
	assert.Equal(t, "pendente", v.Status)
}

func TestConfirmSecondVisitSameSlotFails(t *testing.T) {
	env := setupVisitEnv(t)

	first := env.newVisit(t, "2026-09-10", "14:00")
	second := env.newVisit(t, "2026-09-10", "14:00")

	env.confirm(t, first.ID)

	confirmado := "confirmado"
	_, err := env.update.Execute(context.Background(), visituc.UpdateVisitInput{
		ID:         second.ID,
		Status:     &confirmado,
		CallerID:   env.corretor.ID,
		CallerRole: "corretor",
	})
	assert.True(t, httperr.IsBusiness(err, "horario_indisponivel"))
}

func TestReconfirmSameVisitIsNoop(t *testing.T) {
	env := setupVisitEnv(t)

	v := env.newVisit(t, "2026-09-10", "14:00")
	env.confirm(t, v.ID)

	// Reenviar confirmado para a mesma visita não conflita consigo mesma
	env.confirm(t, v.ID)
}

func TestUpdateVisitPermission(t *testing.T) {
	env := setupVisitEnv(t)

	v := env.newVisit(t, "2026-09-10", "14:00")

	realizado := "realizado"
	_, err := env.update.Execute(context.Background(), visituc.UpdateVisitInput{
		ID:         v.ID,
		Status:     &realizado,
		CallerID:   env.corretor.ID + 100,
		CallerRole: "corretor",
	})
	assert.True(t, httperr.IsBusiness(err, "permissao_negada"))
}

func TestUpdateVisitInvalidStatus(t *testing.T) {
	env := setupVisitEnv(t)

	v := env.newVisit(t, "2026-09-10", "14:00")

	invalid := "feito"
	_, err := env.update.Execute(context.Background(), visituc.UpdateVisitInput{
		ID:         v.ID,
		Status:     &invalid,
		CallerID:   env.corretor.ID,
		CallerRole: "corretor",
	})
	assert.True(t, httperr.IsBusiness(err, "status_invalido"))
}
