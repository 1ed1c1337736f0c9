package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	propdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/property"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type PropertyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPropertyHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PropertyHandler {
	return &PropertyHandler{db: db, audit: dispatcher}
}

// ======================================================
// LIST PROPERTIES (PÚBLICO)
// ======================================================
func (h *PropertyHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := h.db.Model(&models.Property{})

	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if finalidade := c.Query("finalidade"); finalidade != "" {
		if !propdomain.ValidFinalidade(finalidade) {
			httperr.BadRequest(c, "finalidade_invalida", "Finalidade inválida.")
			return
		}
		q = q.Where("finalidade = ?", finalidade)
	}
	if status := c.Query("status"); status != "" {
		if !propdomain.ValidStatus(status) {
			httperr.BadRequest(c, "status_invalido", "Status inválido.")
			return
		}
		q = q.Where("status = ?", status)
	}
	if cidade := strings.TrimSpace(c.Query("cidade")); cidade != "" {
		q = q.Where("LOWER(cidade) LIKE ?", "%"+strings.ToLower(cidade)+"%")
	}
	if bairro := strings.TrimSpace(c.Query("bairro")); bairro != "" {
		q = q.Where("LOWER(bairro) LIKE ?", "%"+strings.ToLower(bairro)+"%")
	}
	if raw := c.Query("preco_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("preco >= ?", v)
		}
	}
	if raw := c.Query("preco_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("preco <= ?", v)
		}
	}
	if raw := c.Query("quartos_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q = q.Where("quartos >= ?", v)
		}
	}
	if raw := c.Query("vagas_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q = q.Where("vagas >= ?", v)
		}
	}
	if raw := c.Query("banheiros_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			q = q.Where("banheiros >= ?", v)
		}
	}
	if raw := c.Query("destaque"); raw != "" {
		q = q.Where("destaque = ?", raw == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar imóveis.")
		return
	}

	var properties []models.Property
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&properties).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar imóveis.")
		return
	}

	httpresp.Paged(c, properties, total, page, limit)
}

// ======================================================
// GET PROPERTY (PÚBLICO)
// ======================================================
func (h *PropertyHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var property models.Property
	if err := h.db.First(&property, id).Error; err != nil {
		httperr.NotFound(c, "imovel_nao_encontrado", "Imóvel não encontrado.")
		return
	}

	c.JSON(http.StatusOK, property)
}

// ======================================================
// CREATE PROPERTY (CORRETOR / ADMIN)
// ======================================================

type PropertyRequest struct {
	Tipo       string  `json:"tipo" binding:"required"`
	Finalidade string  `json:"finalidade" binding:"required"`
	Preco      float64 `json:"preco" binding:"required,gt=0"`

	Cidade      string `json:"cidade" binding:"required"`
	Bairro      string `json:"bairro" binding:"required"`
	Rua         string `json:"rua" binding:"required"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	CEP         string `json:"cep"`

	Metragem  float64 `json:"metragem" binding:"required,gt=0"`
	Vagas     int     `json:"vagas"`
	Quartos   int     `json:"quartos"`
	Banheiros int     `json:"banheiros"`

	Descricao string `json:"descricao"`
	Imagem    string `json:"imagem"`

	// Admin pode cadastrar em nome de um corretor
	CorretorID uint `json:"corretor_id"`
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	if !propdomain.ValidFinalidade(req.Finalidade) {
		httperr.BadRequest(c, "finalidade_invalida", "Finalidade inválida.")
		return
	}

	userID := callerID(c)

	corretorID := userID
	if callerRole(c) == "admin" && req.CorretorID != 0 {
		var broker models.User
		if err := h.db.First(&broker, req.CorretorID).Error; err != nil || broker.Tipo != "corretor" {
			httperr.BadRequest(c, "corretor_nao_encontrado", "Corretor não encontrado.")
			return
		}
		corretorID = req.CorretorID
	}

	property := models.Property{
		Tipo:        req.Tipo,
		Finalidade:  req.Finalidade,
		Preco:       req.Preco,
		Cidade:      req.Cidade,
		Bairro:      req.Bairro,
		Rua:         req.Rua,
		Numero:      req.Numero,
		Complemento: req.Complemento,
		CEP:         req.CEP,
		Metragem:    req.Metragem,
		Vagas:       req.Vagas,
		Quartos:     req.Quartos,
		Banheiros:   req.Banheiros,
		Descricao:   req.Descricao,
		Status:      string(propdomain.StatusDisponivel),
		Imagem:      req.Imagem,
		CorretorID:  corretorID,
	}

	if err := h.db.Create(&property).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao criar o imóvel.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "imovel_criado",
		Entity:   "imovel",
		EntityID: &property.ID,
	})

	c.JSON(http.StatusCreated, property)
}

// ======================================================
// UPDATE PROPERTY (DONO / ADMIN)
// ======================================================

type updatePropertyRequest struct {
	Tipo       *string  `json:"tipo"`
	Finalidade *string  `json:"finalidade"`
	Preco      *float64 `json:"preco"`

	Cidade      *string `json:"cidade"`
	Bairro      *string `json:"bairro"`
	Rua         *string `json:"rua"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	CEP         *string `json:"cep"`

	Metragem  *float64 `json:"metragem"`
	Vagas     *int     `json:"vagas"`
	Quartos   *int     `json:"quartos"`
	Banheiros *int     `json:"banheiros"`

	Descricao *string `json:"descricao"`
	Status    *string `json:"status"`
	Imagem    *string `json:"imagem"`
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var property models.Property
	if err := h.db.First(&property, id).Error; err != nil {
		httperr.NotFound(c, "imovel_nao_encontrado", "Imóvel não encontrado.")
		return
	}

	userID := callerID(c)
	if callerRole(c) != "admin" && property.CorretorID != userID {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para alterar esse imóvel.")
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	if req.Tipo != nil {
		property.Tipo = *req.Tipo
	}
	if req.Finalidade != nil {
		if !propdomain.ValidFinalidade(*req.Finalidade) {
			httperr.BadRequest(c, "finalidade_invalida", "Finalidade inválida.")
			return
		}
		property.Finalidade = *req.Finalidade
	}
	if req.Preco != nil {
		if *req.Preco <= 0 {
			httperr.BadRequest(c, "preco_invalido", "Preço precisa ser maior que zero.")
			return
		}
		property.Preco = *req.Preco
	}
	if req.Cidade != nil {
		property.Cidade = *req.Cidade
	}
	if req.Bairro != nil {
		property.Bairro = *req.Bairro
	}
	if req.Rua != nil {
		property.Rua = *req.Rua
	}
	if req.Numero != nil {
		property.Numero = *req.Numero
	}
	if req.Complemento != nil {
		property.Complemento = *req.Complemento
	}
	if req.CEP != nil {
		property.CEP = *req.CEP
	}
	if req.Metragem != nil {
		property.Metragem = *req.Metragem
	}
	if req.Vagas != nil {
		property.Vagas = *req.Vagas
	}
	if req.Quartos != nil {
		property.Quartos = *req.Quartos
	}
	if req.Banheiros != nil {
		property.Banheiros = *req.Banheiros
	}
	if req.Descricao != nil {
		property.Descricao = *req.Descricao
	}
	if req.Status != nil {
		if !propdomain.ValidStatus(*req.Status) {
			httperr.BadRequest(c, "status_invalido", "Status inválido.")
			return
		}
		property.Status = *req.Status
	}
	if req.Imagem != nil {
		property.Imagem = *req.Imagem
	}

	if err := h.db.Save(&property).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao atualizar o imóvel.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "imovel_atualizado",
		Entity:   "imovel",
		EntityID: &property.ID,
	})

	c.JSON(http.StatusOK, property)
}

// ======================================================
// TOGGLE DESTAQUE (ADMIN)
// ======================================================

type destaqueRequest struct {
	Destaque bool `json:"destaque"`
}

// SetDestaque é idempotente: reenviar o mesmo valor responde 200.
func (h *PropertyHandler) SetDestaque(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var req destaqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	var property models.Property
	if err := h.db.First(&property, id).Error; err != nil {
		httperr.NotFound(c, "imovel_nao_encontrado", "Imóvel não encontrado.")
		return
	}

	if property.Destaque != req.Destaque {
		property.Destaque = req.Destaque
		if err := h.db.Model(&property).Update("destaque", req.Destaque).Error; err != nil {
			httperr.Internal(c, "erro_interno", "Erro ao atualizar o destaque.")
			return
		}
	}

	c.JSON(http.StatusOK, property)
}

// ======================================================
// DELETE PROPERTY (DONO / ADMIN)
// ======================================================
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var property models.Property
	if err := h.db.First(&property, id).Error; err != nil {
		httperr.NotFound(c, "imovel_nao_encontrado", "Imóvel não encontrado.")
		return
	}

	userID := callerID(c)
	if callerRole(c) != "admin" && property.CorretorID != userID {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para remover esse imóvel.")
		return
	}

	if err := h.db.Delete(&property).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover o imóvel.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "imovel_removido",
		Entity:   "imovel",
		EntityID: &property.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Imóvel removido com sucesso."})
}
