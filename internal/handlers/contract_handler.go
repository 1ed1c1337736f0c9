package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dealdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	dealuc "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/deal"
)

type ContractHandler struct {
	db     *gorm.DB
	repo   dealdomain.Repository
	create *dealuc.CreateContract
	update *dealuc.UpdateContract
}

func NewContractHandler(
	db *gorm.DB,
	repo dealdomain.Repository,
	create *dealuc.CreateContract,
	update *dealuc.UpdateContract,
) *ContractHandler {
	return &ContractHandler{
		db:     db,
		repo:   repo,
		create: create,
		update: update,
	}
}

func (h *ContractHandler) scoped(c *gin.Context) *gorm.DB {
	q := h.db.Model(&models.Contract{})

	switch callerRole(c) {
	case "cliente":
		q = q.Where("cliente_id = ?", callerID(c))
	case "corretor":
		q = q.Where("corretor_id = ?", callerID(c))
	}
	return q
}

// visible confere se o chamador participa do contrato.
func (h *ContractHandler) visible(c *gin.Context, ct *models.Contract) bool {
	userID := callerID(c)
	return callerRole(c) == "admin" || ct.ClienteID == userID || ct.CorretorID == userID
}

// ======================================================
// LIST CONTRACTS
// ======================================================
func (h *ContractHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := h.scoped(c)

	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar contratos.")
		return
	}

	var contracts []models.Contract
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&contracts).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar contratos.")
		return
	}

	httpresp.Paged(c, contracts, total, page, limit)
}

// ======================================================
// GET CONTRACT
// ======================================================
func (h *ContractHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var ct models.Contract
	if err := h.db.First(&ct, id).Error; err != nil {
		httperr.NotFound(c, "contrato_nao_encontrado", "Contrato não encontrado.")
		return
	}

	if !h.visible(c, &ct) {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para ver esse contrato.")
		return
	}

	c.JSON(http.StatusOK, ct)
}

// ======================================================
// GET DOCUMENT
// ======================================================
func (h *ContractHandler) GetDocument(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var ct models.Contract
	if err := h.db.First(&ct, id).Error; err != nil {
		httperr.NotFound(c, "contrato_nao_encontrado", "Contrato não encontrado.")
		return
	}

	if !h.visible(c, &ct) {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para ver esse contrato.")
		return
	}

	if ct.DocumentoURL == "" {
		httperr.NotFound(c, "documento_nao_encontrado", "O contrato ainda não tem documento anexado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"documento_url": ct.DocumentoURL})
}

// ======================================================
// CREATE CONTRACT (CORRETOR)
// ======================================================

type CreateContractRequest struct {
	ImovelID  uint `json:"imovel_id" binding:"required"`
	ClienteID uint `json:"cliente_id" binding:"required"`

	Tipo  string  `json:"tipo" binding:"required"`
	Valor float64 `json:"valor" binding:"required"`

	DataInicio  string  `json:"data_inicio" binding:"required"`
	DataFim     *string `json:"data_fim"`
	Observacoes string  `json:"observacoes"`
}

func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	ct, err := h.create.Execute(c.Request.Context(), dealuc.CreateContractInput{
		ImovelID:    req.ImovelID,
		ClienteID:   req.ClienteID,
		CorretorID:  callerID(c),
		Tipo:        req.Tipo,
		Valor:       req.Valor,
		DataInicio:  req.DataInicio,
		DataFim:     req.DataFim,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ct)
}

// ======================================================
// UPDATE CONTRACT (ADMIN / CORRETOR)
// ======================================================

type UpdateContractRequest struct {
	Status       *string `json:"status"`
	Observacoes  *string `json:"observacoes"`
	DocumentoURL *string `json:"documento_url"`
}

func (h *ContractHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	ct, err := h.update.Execute(c.Request.Context(), dealuc.UpdateContractInput{
		ID:           id,
		Status:       req.Status,
		Observacoes:  req.Observacoes,
		DocumentoURL: req.DocumentoURL,
		CallerID:     callerID(c),
		CallerRole:   callerRole(c),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ct)
}

// ======================================================
// DELETE CONTRACT (ADMIN)
// ======================================================
func (h *ContractHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	// A remoção devolve o imóvel para disponivel na mesma transação
	deleted, err := h.repo.DeleteContract(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover o contrato.")
		return
	}
	if !deleted {
		httperr.NotFound(c, "contrato_nao_encontrado", "Contrato não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contrato removido com sucesso."})
}
