package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/cache"
	"github.com/BruksfildServices01/imobiliaria-api/internal/config"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/routes"
	"github.com/BruksfildServices01/imobiliaria-api/internal/testutil"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:            "test-secret",
		JWTExpiryHours:       1,
		CommissionSaleRate:   0.05,
		CommissionRentalRate: 0.10,
	}

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, testutil.NewFakeUploader(), (*cache.Cache)(nil))

	return &testAPI{router: r, db: db}
}

func (a *testAPI) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register cria o usuário via API e devolve o token.
func (a *testAPI) register(t *testing.T, nome, email, tipo string) string {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome":  nome,
		"email": email,
		"senha": "segredo123",
		"tipo":  tipo,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode(t, w)["token"].(string)
}

// registerAdmin promove um usuário comum; o papel vem do banco a cada
// requisição, então o token original passa a valer como admin.
func (a *testAPI) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	token := a.register(t, "Admin", email, "cliente")
	require.NoError(t, a.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("tipo", "admin").Error)
	return token
}

func (a *testAPI) createProperty(t *testing.T, token string) uint {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/imoveis", token, gin.H{
		"tipo":       "casa",
		"finalidade": "venda",
		"preco":      300000,
		"cidade":     "Luanda",
		"bairro":     "Talatona",
		"rua":        "Rua A",
		"metragem":   120,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(decode(t, w)["id"].(float64))
}

// ======================================================
// AUTH
// ======================================================

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	w := api.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome":  "Carlos",
		"email": "carlos@imob.com",
		"senha": "segredo123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	usuario := body["usuario"].(map[string]any)
	assert.Equal(t, "cliente", usuario["tipo"])
	assert.NotContains(t, usuario, "senha")
	assert.NotContains(t, usuario, "senha_hash")

	w = api.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carlos@imob.com",
		"senha": "segredo123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carlos@imob.com",
		"senha": "errada123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "credenciais_invalidas", decode(t, w)["error"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)

	api.register(t, "Carlos", "carlos@imob.com", "cliente")

	w := api.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome":  "Outro",
		"email": "carlos@imob.com",
		"senha": "segredo123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_ja_cadastrado", decode(t, w)["error"])
}

func TestRegisterRejectsAdmin(t *testing.T) {
	api := newTestAPI(t)

	w := api.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome":  "Mau",
		"email": "mau@imob.com",
		"senha": "segredo123",
		"tipo":  "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.request(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_nao_fornecido", decode(t, w)["error"])
}

// ======================================================
// IMÓVEIS
// ======================================================

func TestPropertyLifecycle(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	id := api.createProperty(t, corretor)

	// Listagem pública, sem token
	w := api.request(t, http.MethodGet, "/api/imoveis", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	dados := body["dados"].([]any)
	require.Len(t, dados, 1)
	assert.Equal(t, "disponivel", dados[0].(map[string]any)["status"])

	paginacao := body["paginacao"].(map[string]any)
	assert.Equal(t, float64(1), paginacao["total"])
	assert.Equal(t, float64(1), paginacao["total_paginas"])

	// Detalhe público
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/imoveis/%d", id), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Atualização pelo dono
	w = api.request(t, http.MethodPut, fmt.Sprintf("/api/imoveis/%d", id), corretor, gin.H{
		"preco": 320000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(320000), decode(t, w)["preco"])
}

func TestPropertyListPagination(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	for i := 0; i < 3; i++ {
		api.createProperty(t, corretor)
	}

	w := api.request(t, http.MethodGet, "/api/imoveis?page=2&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Len(t, body["dados"].([]any), 1)

	paginacao := body["paginacao"].(map[string]any)
	assert.Equal(t, float64(3), paginacao["total"])
	assert.Equal(t, float64(2), paginacao["pagina_atual"])
	assert.Equal(t, float64(3), paginacao["total_paginas"])
	assert.Equal(t, float64(1), paginacao["itens_por_pagina"])
}

func TestPropertyCreateForbiddenForClient(t *testing.T) {
	api := newTestAPI(t)
	cliente := api.register(t, "Carlos", "carlos@imob.com", "cliente")

	w := api.request(t, http.MethodPost, "/api/imoveis", cliente, gin.H{
		"tipo":       "casa",
		"finalidade": "venda",
		"preco":      100000,
		"cidade":     "Luanda",
		"bairro":     "Maianga",
		"rua":        "Rua B",
		"metragem":   90,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPropertyUpdateForbiddenForOtherBroker(t *testing.T) {
	api := newTestAPI(t)
	dona := api.register(t, "Ana", "ana@imob.com", "corretor")
	outro := api.register(t, "Bruno", "bruno@imob.com", "corretor")

	id := api.createProperty(t, dona)

	w := api.request(t, http.MethodPut, fmt.Sprintf("/api/imoveis/%d", id), outro, gin.H{
		"preco": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permissao_negada", decode(t, w)["error"])
}

func TestDestaqueAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	admin := api.registerAdmin(t, "admin@imob.com")

	id := api.createProperty(t, corretor)
	path := fmt.Sprintf("/api/imoveis/%d/destaque", id)

	w := api.request(t, http.MethodPatch, path, corretor, gin.H{"destaque": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.request(t, http.MethodPatch, path, admin, gin.H{"destaque": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["destaque"])

	// Idempotente
	w = api.request(t, http.MethodPatch, path, admin, gin.H{"destaque": true})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPropertyListFilterValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.request(t, http.MethodGet, "/api/imoveis?status=inexistente", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status_invalido", decode(t, w)["error"])
}

// ======================================================
// NEGÓCIO COMPLETO
// ======================================================

func TestTransactionFlowMarksPropertySold(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	cliente := api.register(t, "Carlos", "carlos@imob.com", "cliente")

	var clienteRow models.User
	require.NoError(t, api.db.Where("email = ?", "carlos@imob.com").First(&clienteRow).Error)

	id := api.createProperty(t, corretor)

	w := api.request(t, http.MethodPost, "/api/transacoes", corretor, gin.H{
		"imovel_id":   id,
		"cliente_id":  clienteRow.ID,
		"tipo":        "venda",
		"valor":       300000,
		"data_inicio": "2026-01-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pendente", decode(t, w)["status"])

	// O imóvel virou vendido
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/imoveis/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vendido", decode(t, w)["status"])

	// Segunda transação no mesmo imóvel conflita
	w = api.request(t, http.MethodPost, "/api/transacoes", corretor, gin.H{
		"imovel_id":   id,
		"cliente_id":  clienteRow.ID,
		"tipo":        "venda",
		"valor":       300000,
		"data_inicio": "2026-01-11",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "imovel_indisponivel", decode(t, w)["error"])

	// Cliente não cria transação
	w = api.request(t, http.MethodPost, "/api/transacoes", cliente, gin.H{
		"imovel_id":   id,
		"cliente_id":  clienteRow.ID,
		"tipo":        "venda",
		"valor":       300000,
		"data_inicio": "2026-01-10",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ======================================================
// AGENDAMENTOS
// ======================================================

func TestVisitVisibility(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	cliente := api.register(t, "Carlos", "carlos@imob.com", "cliente")
	outro := api.register(t, "Daniel", "daniel@imob.com", "cliente")

	var corretorRow models.User
	require.NoError(t, api.db.Where("email = ?", "ana@imob.com").First(&corretorRow).Error)

	id := api.createProperty(t, corretor)

	w := api.request(t, http.MethodPost, "/api/agendamentos", cliente, gin.H{
		"imovel_id":   id,
		"corretor_id": corretorRow.ID,
		"data":        "2026-09-10",
		"hora":        "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	visitID := uint(decode(t, w)["id"].(float64))

	// Dono da visita enxerga
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/agendamentos/%d", visitID), cliente, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Outro cliente não
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/agendamentos/%d", visitID), outro, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Na listagem cada cliente vê só o que é seu
	w = api.request(t, http.MethodGet, "/api/agendamentos", outro, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["dados"])
}

func TestVisitCreateUnavailableProperty(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	cliente := api.register(t, "Carlos", "carlos@imob.com", "cliente")

	var corretorRow models.User
	require.NoError(t, api.db.Where("email = ?", "ana@imob.com").First(&corretorRow).Error)

	id := api.createProperty(t, corretor)
	require.NoError(t, api.db.Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", "vendido").Error)

	// Imóvel fora de disponivel é erro de validação no agendamento
	w := api.request(t, http.MethodPost, "/api/agendamentos", cliente, gin.H{
		"imovel_id":   id,
		"corretor_id": corretorRow.ID,
		"data":        "2026-09-10",
		"hora":        "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "imovel_indisponivel", decode(t, w)["error"])
}

func TestVisitPeriodRequiresRange(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	w := api.request(t, http.MethodGet, "/api/agendamentos/periodo", corretor, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "periodo_obrigatorio", decode(t, w)["error"])
}

// ======================================================
// CLIENTES
// ======================================================

func TestClientProfileSelfService(t *testing.T) {
	api := newTestAPI(t)
	cliente := api.register(t, "Carlos", "carlos@imob.com", "cliente")

	// Sem perfil ainda
	w := api.request(t, http.MethodGet, "/api/clientes/me", cliente, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Primeira chamada cria
	w = api.request(t, http.MethodPut, "/api/clientes/me", cliente, gin.H{
		"bi":                    "001234567LA041",
		"cidade":                "Luanda",
		"interesse":             "compra",
		"renda_mensal":          250000,
		"tipo_imovel_interesse": []string{"casa", "apartamento"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.request(t, http.MethodGet, "/api/clientes/me", cliente, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	tipos := body["tipo_imovel_interesse"].([]any)
	require.Len(t, tipos, 2)
	assert.Equal(t, "casa", tipos[0])
	assert.Equal(t, "apartamento", tipos[1])

	// Cliente não lista a carteira
	w = api.request(t, http.MethodGet, "/api/clientes", cliente, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClientDuplicateBI(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	api.register(t, "Carlos", "carlos@imob.com", "cliente")
	api.register(t, "Daniel", "daniel@imob.com", "cliente")

	var carlos, daniel models.User
	require.NoError(t, api.db.Where("email = ?", "carlos@imob.com").First(&carlos).Error)
	require.NoError(t, api.db.Where("email = ?", "daniel@imob.com").First(&daniel).Error)

	w := api.request(t, http.MethodPost, "/api/clientes", corretor, gin.H{
		"usuario_id": carlos.ID,
		"bi":         "001234567LA041",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.request(t, http.MethodPost, "/api/clientes", corretor, gin.H{
		"usuario_id": daniel.ID,
		"bi":         "001234567LA041",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "bi_ja_cadastrado", decode(t, w)["error"])
}

// ======================================================
// DASHBOARD / AUDITORIA
// ======================================================

func TestDashboardRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	w := api.request(t, http.MethodGet, "/api/metricas/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Qualquer usuário autenticado pode consultar as métricas.
	w = api.request(t, http.MethodGet, "/api/metricas/dashboard", corretor, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "imoveis")
	assert.Contains(t, body, "transacoes")
	assert.Contains(t, body, "agendamentos")
}

func TestCommissionsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	admin := api.registerAdmin(t, "admin@imob.com")

	var corretorRow, adminRow models.User
	require.NoError(t, api.db.Where("email = ?", "ana@imob.com").First(&corretorRow).Error)
	require.NoError(t, api.db.Where("email = ?", "admin@imob.com").First(&adminRow).Error)

	id := api.createProperty(t, corretor)

	w := api.request(t, http.MethodPost, "/api/transacoes", corretor, gin.H{
		"imovel_id":   id,
		"cliente_id":  adminRow.ID,
		"tipo":        "venda",
		"valor":       200000,
		"data_inicio": "2026-01-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A comissão conta toda transação do período, mesmo pendente
	w = api.request(t, http.MethodGet, "/api/metricas/comissoes", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, float64(corretorRow.ID), result[0]["corretor_id"])
	assert.InDelta(t, 10000.0, result[0]["comissao_total"].(float64), 0.001)
}

func TestSalesByPeriodReturnsRows(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	api.register(t, "Carlos", "carlos@imob.com", "cliente")

	var clienteRow models.User
	require.NoError(t, api.db.Where("email = ?", "carlos@imob.com").First(&clienteRow).Error)

	id := api.createProperty(t, corretor)

	w := api.request(t, http.MethodPost, "/api/transacoes", corretor, gin.H{
		"imovel_id":   id,
		"cliente_id":  clienteRow.ID,
		"tipo":        "venda",
		"valor":       300000,
		"data_inicio": "2026-01-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Vendas do período devolvem as transações, não agregados
	w = api.request(t, http.MethodGet, "/api/metricas/vendas?data_inicio=2026-01-01", corretor, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "venda", rows[0]["tipo"])
	assert.Equal(t, float64(300000), rows[0]["valor"])

	// Locações ficam de fora
	w = api.request(t, http.MethodGet, "/api/metricas/locacoes", corretor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Empty(t, rows)
}

func TestAuditLogsAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")
	admin := api.registerAdmin(t, "admin@imob.com")

	w := api.request(t, http.MethodGet, "/api/audit-logs", corretor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.request(t, http.MethodGet, "/api/audit-logs", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Carlos", "carlos@imob.com", "cliente")

	require.NoError(t, api.db.Where("email = ?", "carlos@imob.com").Delete(&models.User{}).Error)

	w := api.request(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "usuario_nao_encontrado", decode(t, w)["error"])
}
