package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	visituc "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/visit"
)

type VisitHandler struct {
	db          *gorm.DB
	createVisit *visituc.CreateVisit
	updateVisit *visituc.UpdateVisit
}

func NewVisitHandler(
	db *gorm.DB,
	createVisit *visituc.CreateVisit,
	updateVisit *visituc.UpdateVisit,
) *VisitHandler {
	return &VisitHandler{
		db:          db,
		createVisit: createVisit,
		updateVisit: updateVisit,
	}
}

// scoped restringe a consulta ao que o papel do chamador pode ver:
// cliente vê as próprias visitas, corretor a própria agenda, admin tudo.
func (h *VisitHandler) scoped(c *gin.Context) *gorm.DB {
	q := h.db.Model(&models.Visit{})

	switch callerRole(c) {
	case "cliente":
		q = q.Where("cliente_id = ?", callerID(c))
	case "corretor":
		q = q.Where("corretor_id = ?", callerID(c))
	}
	return q
}

// ======================================================
// LIST VISITS
// ======================================================
func (h *VisitHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := h.scoped(c)

	if data := c.Query("data"); data != "" {
		q = q.Where("data = ?", data)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if imovelID := c.Query("imovel_id"); imovelID != "" {
		q = q.Where("imovel_id = ?", imovelID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar agendamentos.")
		return
	}

	var visits []models.Visit
	if err := q.
		Order("data ASC, hora ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&visits).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar agendamentos.")
		return
	}

	httpresp.Paged(c, visits, total, page, limit)
}

// ======================================================
// LIST BY PERIOD (ADMIN / CORRETOR)
// ======================================================
func (h *VisitHandler) ListByPeriod(c *gin.Context) {
	inicio := c.Query("data_inicio")
	fim := c.Query("data_fim")
	if inicio == "" || fim == "" {
		httperr.BadRequest(c, "periodo_obrigatorio", "Informe data_inicio e data_fim.")
		return
	}

	q := h.scoped(c).Where("data BETWEEN ? AND ?", inicio, fim)

	var visits []models.Visit
	if err := q.Order("data ASC, hora ASC").Find(&visits).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// ======================================================
// GET VISIT
// ======================================================
func (h *VisitHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var visit models.Visit
	if err := h.db.First(&visit, id).Error; err != nil {
		httperr.NotFound(c, "agendamento_nao_encontrado", "Agendamento não encontrado.")
		return
	}

	userID := callerID(c)
	if callerRole(c) != "admin" && visit.ClienteID != userID && visit.CorretorID != userID {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para ver esse agendamento.")
		return
	}

	c.JSON(http.StatusOK, visit)
}

// ======================================================
// CREATE VISIT (CLIENTE)
// ======================================================

type CreateVisitRequest struct {
	ImovelID   uint `json:"imovel_id" binding:"required"`
	CorretorID uint `json:"corretor_id" binding:"required"`

	Data string `json:"data" binding:"required"`
	Hora string `json:"hora" binding:"required"`

	Observacoes string `json:"observacoes"`
}

func (h *VisitHandler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	visit, err := h.createVisit.Execute(c.Request.Context(), visituc.CreateVisitInput{
		ImovelID:    req.ImovelID,
		CorretorID:  req.CorretorID,
		ClienteID:   callerID(c),
		Data:        req.Data,
		Hora:        req.Hora,
		Observacoes: req.Observacoes,
	})
	if err != nil {
		// Na criação de visita um imóvel fora de disponivel é erro de
		// validação do pedido, não disputa por estado.
		if httperr.IsBusiness(err, "imovel_indisponivel") {
			httperr.BadRequest(c, "imovel_indisponivel", businessMessages["imovel_indisponivel"])
			return
		}
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, visit)
}

// ======================================================
// UPDATE VISIT (ADMIN / CORRETOR)
// ======================================================

type UpdateVisitRequest struct {
	Status      *string `json:"status"`
	Observacoes *string `json:"observacoes"`
}

func (h *VisitHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	visit, err := h.updateVisit.Execute(c.Request.Context(), visituc.UpdateVisitInput{
		ID:          id,
		Status:      req.Status,
		Observacoes: req.Observacoes,
		CallerID:    callerID(c),
		CallerRole:  callerRole(c),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// ======================================================
// DELETE VISIT (ADMIN)
// ======================================================
func (h *VisitHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	result := h.db.Delete(&models.Visit{}, id)
	if result.Error != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover o agendamento.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "agendamento_nao_encontrado", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento removido com sucesso."})
}
