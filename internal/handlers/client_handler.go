package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type ClientRequest struct {
	UsuarioID uint `json:"usuario_id"`

	BI             string  `json:"bi" binding:"required"`
	DataNascimento *string `json:"data_nascimento"`

	Endereco string `json:"endereco"`
	Bairro   string `json:"bairro"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
	CEP      string `json:"cep"`

	Profissao   string  `json:"profissao"`
	RendaMensal float64 `json:"renda_mensal"`

	Interesse           string   `json:"interesse"`
	TipoImovelInteresse []string `json:"tipo_imovel_interesse"`
	Observacoes         string   `json:"observacoes"`
}

func parseBirthDate(raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// ======================================================
// LIST CLIENTS (ADMIN / CORRETOR)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := h.db.Model(&models.Client{})

	if interesse := c.Query("interesse"); interesse != "" {
		q = q.Where("interesse = ?", interesse)
	}
	if cidade := strings.TrimSpace(c.Query("cidade")); cidade != "" {
		q = q.Where("LOWER(cidade) LIKE ?", "%"+strings.ToLower(cidade)+"%")
	}
	if raw := c.Query("renda_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("renda_mensal >= ?", v)
		}
	}
	if raw := c.Query("renda_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("renda_mensal <= ?", v)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar clientes.")
		return
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar clientes.")
		return
	}

	httpresp.Paged(c, clients, total, page, limit)
}

// ======================================================
// GET CLIENT (ADMIN / CORRETOR)
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "cliente_nao_encontrado", "Cliente não encontrado.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// CREATE CLIENT (ADMIN / CORRETOR)
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	if req.UsuarioID == 0 {
		httperr.BadRequest(c, "usuario_obrigatorio", "Informe o usuário dono do perfil.")
		return
	}

	var user models.User
	if err := h.db.First(&user, req.UsuarioID).Error; err != nil {
		httperr.NotFound(c, "usuario_nao_encontrado", "Usuário não encontrado.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).Where("usuario_id = ?", req.UsuarioID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "cliente_ja_cadastrado", "Esse usuário já tem perfil de cliente.")
		return
	}

	nascimento, ok := parseBirthDate(req.DataNascimento)
	if !ok {
		httperr.BadRequest(c, "data_invalida", "Data de nascimento inválida, use YYYY-MM-DD.")
		return
	}

	client := models.Client{
		UsuarioID:           req.UsuarioID,
		BI:                  strings.TrimSpace(req.BI),
		DataNascimento:      nascimento,
		Endereco:            req.Endereco,
		Bairro:              req.Bairro,
		Cidade:              req.Cidade,
		Estado:              req.Estado,
		CEP:                 req.CEP,
		Profissao:           req.Profissao,
		RendaMensal:         req.RendaMensal,
		Interesse:           req.Interesse,
		TipoImovelInteresse: req.TipoImovelInteresse,
		Observacoes:         req.Observacoes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "bi_ja_cadastrado", "Já existe um cliente com esse BI.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao criar o cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE CLIENT (ADMIN / CORRETOR)
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "cliente_nao_encontrado", "Cliente não encontrado.")
		return
	}

	h.applyUpdate(c, &client)
}

// ======================================================
// MY PROFILE (CLIENTE)
// ======================================================
func (h *ClientHandler) GetMe(c *gin.Context) {
	var client models.Client
	if err := h.db.Where("usuario_id = ?", callerID(c)).First(&client).Error; err != nil {
		httperr.NotFound(c, "cliente_nao_encontrado", "Você ainda não tem perfil de cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateMe cria o perfil na primeira chamada e atualiza nas seguintes.
func (h *ClientHandler) UpdateMe(c *gin.Context) {
	userID := callerID(c)

	var client models.Client
	err := h.db.Where("usuario_id = ?", userID).First(&client).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			httperr.Internal(c, "erro_interno", "Erro ao buscar o perfil.")
			return
		}

		var req ClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "requisicao_invalida",
				"details": err.Error(),
			})
			return
		}

		nascimento, ok := parseBirthDate(req.DataNascimento)
		if !ok {
			httperr.BadRequest(c, "data_invalida", "Data de nascimento inválida, use YYYY-MM-DD.")
			return
		}

		client = models.Client{
			UsuarioID:           userID,
			BI:                  strings.TrimSpace(req.BI),
			DataNascimento:      nascimento,
			Endereco:            req.Endereco,
			Bairro:              req.Bairro,
			Cidade:              req.Cidade,
			Estado:              req.Estado,
			CEP:                 req.CEP,
			Profissao:           req.Profissao,
			RendaMensal:         req.RendaMensal,
			Interesse:           req.Interesse,
			TipoImovelInteresse: req.TipoImovelInteresse,
			Observacoes:         req.Observacoes,
		}

		if err := h.db.Create(&client).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				httperr.Conflict(c, "bi_ja_cadastrado", "Já existe um cliente com esse BI.")
				return
			}
			httperr.Internal(c, "erro_interno", "Erro ao criar o perfil.")
			return
		}

		c.JSON(http.StatusCreated, client)
		return
	}

	h.applyUpdate(c, &client)
}

// ======================================================
// DELETE CLIENT (ADMIN)
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	result := h.db.Delete(&models.Client{}, id)
	if result.Error != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover o cliente.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "cliente_nao_encontrado", "Cliente não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido com sucesso."})
}

// --------- internos ---------

type updateClientRequest struct {
	BI             *string `json:"bi"`
	DataNascimento *string `json:"data_nascimento"`

	Endereco *string `json:"endereco"`
	Bairro   *string `json:"bairro"`
	Cidade   *string `json:"cidade"`
	Estado   *string `json:"estado"`
	CEP      *string `json:"cep"`

	Profissao   *string  `json:"profissao"`
	RendaMensal *float64 `json:"renda_mensal"`

	Interesse           *string   `json:"interesse"`
	TipoImovelInteresse *[]string `json:"tipo_imovel_interesse"`
	Observacoes         *string   `json:"observacoes"`
}

func (h *ClientHandler) applyUpdate(c *gin.Context, client *models.Client) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	if req.BI != nil {
		client.BI = strings.TrimSpace(*req.BI)
	}
	if req.DataNascimento != nil {
		nascimento, ok := parseBirthDate(req.DataNascimento)
		if !ok {
			httperr.BadRequest(c, "data_invalida", "Data de nascimento inválida, use YYYY-MM-DD.")
			return
		}
		client.DataNascimento = nascimento
	}
	if req.Endereco != nil {
		client.Endereco = *req.Endereco
	}
	if req.Bairro != nil {
		client.Bairro = *req.Bairro
	}
	if req.Cidade != nil {
		client.Cidade = *req.Cidade
	}
	if req.Estado != nil {
		client.Estado = *req.Estado
	}
	if req.CEP != nil {
		client.CEP = *req.CEP
	}
	if req.Profissao != nil {
		client.Profissao = *req.Profissao
	}
	if req.RendaMensal != nil {
		client.RendaMensal = *req.RendaMensal
	}
	if req.Interesse != nil {
		client.Interesse = *req.Interesse
	}
	if req.TipoImovelInteresse != nil {
		client.TipoImovelInteresse = *req.TipoImovelInteresse
	}
	if req.Observacoes != nil {
		client.Observacoes = *req.Observacoes
	}

	if err := h.db.Save(client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "bi_ja_cadastrado", "Já existe um cliente com esse BI.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao atualizar o cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}
