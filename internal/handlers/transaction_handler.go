package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dealdomain "github.com/BruksfildServices01/imobiliaria-api/internal/domain/deal"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/report"
	dealuc "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/deal"
)

type TransactionHandler struct {
	db     *gorm.DB
	repo   dealdomain.Repository
	create *dealuc.CreateTransaction
	update *dealuc.UpdateTransaction
}

func NewTransactionHandler(
	db *gorm.DB,
	repo dealdomain.Repository,
	create *dealuc.CreateTransaction,
	update *dealuc.UpdateTransaction,
) *TransactionHandler {
	return &TransactionHandler{
		db:     db,
		repo:   repo,
		create: create,
		update: update,
	}
}

func (h *TransactionHandler) scoped(c *gin.Context) *gorm.DB {
	q := h.db.Model(&models.Transaction{})

	switch callerRole(c) {
	case "cliente":
		q = q.Where("cliente_id = ?", callerID(c))
	case "corretor":
		q = q.Where("corretor_id = ?", callerID(c))
	}
	return q
}

// ======================================================
// LIST TRANSACTIONS
// ======================================================
func (h *TransactionHandler) List(c *gin.Context) {
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
		httperr.Internal(c, "erro_interno", "Erro ao listar transações.")
		return
	}

	var transactions []models.Transaction
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&transactions).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar transações.")
		return
	}

	httpresp.Paged(c, transactions, total, page, limit)
}

// ======================================================
// STATS (ADMIN / CORRETOR)
// ======================================================
func (h *TransactionHandler) Stats(c *gin.Context) {
	q := h.scoped(c)

	if inicio := c.Query("data_inicio"); inicio != "" {
		q = q.Where("data_inicio >= ?", inicio)
	}
	if fim := c.Query("data_fim"); fim != "" {
		q = q.Where("data_inicio <= ?", fim)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular as estatísticas.")
		return
	}

	httpresp.OK(c, report.TransactionsDetailed(transactions))
}

// ======================================================
// GET TRANSACTION
// ======================================================
func (h *TransactionHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var t models.Transaction
	if err := h.db.First(&t, id).Error; err != nil {
		httperr.NotFound(c, "transacao_nao_encontrada", "Transação não encontrada.")
		return
	}

	userID := callerID(c)
	if callerRole(c) != "admin" && t.ClienteID != userID && t.CorretorID != userID {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para ver essa transação.")
		return
	}

	c.JSON(http.StatusOK, t)
}

// ======================================================
// CREATE TRANSACTION (CORRETOR)
// ======================================================

type CreateTransactionRequest struct {
	ImovelID  uint `json:"imovel_id" binding:"required"`
	ClienteID uint `json:"cliente_id" binding:"required"`

	Tipo  string  `json:"tipo" binding:"required"`
	Valor float64 `json:"valor" binding:"required"`

	DataInicio  string  `json:"data_inicio" binding:"required"`
	DataFim     *string `json:"data_fim"`
	ContratoURL string  `json:"contrato_url"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	t, err := h.create.Execute(c.Request.Context(), dealuc.CreateTransactionInput{
		ImovelID:    req.ImovelID,
		ClienteID:   req.ClienteID,
		CorretorID:  callerID(c),
		Tipo:        req.Tipo,
		Valor:       req.Valor,
		DataInicio:  req.DataInicio,
		DataFim:     req.DataFim,
		ContratoURL: req.ContratoURL,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ======================================================
// UPDATE TRANSACTION (ADMIN / CORRETOR)
// ======================================================

type UpdateTransactionRequest struct {
	Status      *string `json:"status"`
	ContratoURL *string `json:"contrato_url"`
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	t, err := h.update.Execute(c.Request.Context(), dealuc.UpdateTransactionInput{
		ID:          id,
		Status:      req.Status,
		ContratoURL: req.ContratoURL,
		CallerID:    callerID(c),
		CallerRole:  callerRole(c),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// ======================================================
// DELETE TRANSACTION (ADMIN)
// ======================================================
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	deleted, err := h.repo.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover a transação.")
		return
	}
	if !deleted {
		httperr.NotFound(c, "transacao_nao_encontrada", "Transação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transação removida com sucesso."})
}
