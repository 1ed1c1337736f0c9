package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	infraRepo "github.com/BruksfildServices01/imobiliaria-api/internal/infra/repository"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/testutil"
)

type visitRepoEnv struct {
	db   *gorm.DB
	repo *infraRepo.VisitGormRepository

	corretor models.User
	cliente  models.User
	imovel   models.Property
}

func setupVisitRepo(t *testing.T) *visitRepoEnv {
	t.Helper()
	db := testutil.NewDB(t)

	env := &visitRepoEnv{
		db:       db,
		repo:     infraRepo.NewVisitGormRepository(db),
		corretor: models.User{Nome: "Ana", Email: "ana@imob.com", SenhaHash: "x", Tipo: "corretor"},
		cliente:  models.User{Nome: "Carlos", Email: "carlos@imob.com", SenhaHash: "x", Tipo: "cliente"},
	}
	require.NoError(t, db.Create(&env.corretor).Error)
	require.NoError(t, db.Create(&env.cliente).Error)

	env.imovel = models.Property{
		Tipo:       "casa",
		Finalidade: "venda",
		Preco:      300000,
		Cidade:     "Luanda",
		Bairro:     "Talatona",
		Rua:        "Rua A",
		Metragem:   120,
		Status:     "disponivel",
		CorretorID: env.corretor.ID,
	}
	require.NoError(t, db.Create(&env.imovel).Error)

	return env
}

func (e *visitRepoEnv) seedVisit(t *testing.T, status, hora string) *models.Visit {
	t.Helper()
	v := &models.Visit{
		ImovelID:   e.imovel.ID,
		ClienteID:  e.cliente.ID,
		CorretorID: e.corretor.ID,
		Data:       "2026-09-10",
		Hora:       hora,
		Status:     status,
	}
	require.NoError(t, e.db.Create(v).Error)
	return v
}

// A checagem de horário confirmado roda na mesma transação da escrita.

func TestCreateVisitRejectsConfirmedSlot(t *testing.T) {
	env := setupVisitRepo(t)
	env.seedVisit(t, "confirmado", "14:00")

	err := env.repo.CreateVisit(context.Background(), &models.Visit{
		ImovelID:   env.imovel.ID,
		ClienteID:  env.cliente.ID,
		CorretorID: env.corretor.ID,
		Data:       "2026-09-10",
		Hora:       "14:00",
		Status:     "pendente",
	})
	assert.True(t, httperr.IsBusiness(err, "horario_indisponivel"))

	var count int64
	require.NoError(t, env.db.Model(&models.Visit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Outro horário segue livre
	require.NoError(t, env.repo.CreateVisit(context.Background(), &models.Visit{
		ImovelID:   env.imovel.ID,
		ClienteID:  env.cliente.ID,
		CorretorID: env.corretor.ID,
		Data:       "2026-09-10",
		Hora:       "15:00",
		Status:     "pendente",
	}))
}

func TestUpdateVisitSlotCheckRollsBack(t *testing.T) {
	env := setupVisitRepo(t)
	env.seedVisit(t, "confirmado", "14:00")
	second := env.seedVisit(t, "pendente", "14:00")

	second.Status = "confirmado"
	err := env.repo.UpdateVisit(context.Background(), second, true)
	assert.True(t, httperr.IsBusiness(err, "horario_indisponivel"))

	var stored models.Visit
	require.NoError(t, env.db.First(&stored, second.ID).Error)
	assert.Equal(t, "pendente", stored.Status)

	// Sem mudança de status a escrita não checa o horário
	second.Status = "pendente"
	second.Observacoes = "remarcar"
	require.NoError(t, env.repo.UpdateVisit(context.Background(), second, false))
}

func TestUpdateVisitSlotCheckIgnoresOwnRow(t *testing.T) {
	env := setupVisitRepo(t)
	confirmed := env.seedVisit(t, "confirmado", "14:00")

	// Reconfirmar a mesma visita não conflita consigo mesma
	require.NoError(t, env.repo.UpdateVisit(context.Background(), confirmed, true))
}
