package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/cache"
	"github.com/BruksfildServices01/imobiliaria-api/internal/config"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpresp"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/report"
)

const dashboardTTL = 5 * time.Minute

type DashboardHandler struct {
	db     *gorm.DB
	cache  *cache.Cache
	config *config.Config
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c, config: cfg}
}

// ======================================================
// VISÃO GERAL
// ======================================================
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var cached report.DashboardStats
	if h.cache.GetJSON(ctx, "dashboard:stats", &cached) {
		httpresp.OK(c, cached)
		return
	}

	var properties []models.Property
	var transactions []models.Transaction
	var visits []models.Visit

	if err := h.db.Find(&properties).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao montar o dashboard.")
		return
	}
	if err := h.db.Find(&transactions).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao montar o dashboard.")
		return
	}
	if err := h.db.Find(&visits).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao montar o dashboard.")
		return
	}

	stats := report.Dashboard(properties, transactions, visits)
	h.cache.SetJSON(ctx, "dashboard:stats", stats, dashboardTTL)

	httpresp.OK(c, stats)
}

// ======================================================
// COMISSÕES
// ======================================================
func (h *DashboardHandler) Commissions(c *gin.Context) {
	q := h.db.Model(&models.Transaction{})

	// O recorte de comissões é pela data de início da transação
	if inicio := c.Query("data_inicio"); inicio != "" {
		q = q.Where("data_inicio >= ?", inicio)
	}
	if fim := c.Query("data_fim"); fim != "" {
		q = q.Where("data_inicio <= ?", fim)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular as comissões.")
		return
	}

	brokers, err := h.brokersByID()
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular as comissões.")
		return
	}

	httpresp.OK(c, report.Commissions(
		transactions,
		brokers,
		h.config.CommissionSaleRate,
		h.config.CommissionRentalRate,
	))
}

// ======================================================
// CONVERSÃO
// ======================================================
func (h *DashboardHandler) Conversion(c *gin.Context) {
	var visits []models.Visit
	if err := h.db.Find(&visits).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular a conversão.")
		return
	}

	var concluded []models.Transaction
	if err := h.db.Where("status = ?", "concluido").Find(&concluded).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular a conversão.")
		return
	}

	brokers, err := h.brokersByID()
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao calcular a conversão.")
		return
	}

	httpresp.OK(c, report.Conversion(visits, concluded, brokers))
}

// ======================================================
// VENDAS / LOCAÇÕES
// ======================================================
func (h *DashboardHandler) Sales(c *gin.Context) {
	h.dealStats(c, "venda")
}

func (h *DashboardHandler) Rentals(c *gin.Context) {
	h.dealStats(c, "aluguel")
}

// dealStats devolve as transações do tipo dentro do período pedido.
func (h *DashboardHandler) dealStats(c *gin.Context, tipo string) {
	q := h.db.Where("tipo = ?", tipo)

	if inicio := c.Query("data_inicio"); inicio != "" {
		q = q.Where("data_inicio >= ?", inicio)
	}
	if fim := c.Query("data_fim"); fim != "" {
		q = q.Where("data_fim <= ?", fim)
	}

	var transactions []models.Transaction
	if err := q.Order("data_inicio").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar as transações do período.")
		return
	}

	httpresp.OK(c, transactions)
}

// ======================================================
// IMÓVEIS POR TIPO / STATUS
// ======================================================
func (h *DashboardHandler) PropertiesByTipo(c *gin.Context) {
	var properties []models.Property
	if err := h.db.Find(&properties).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao agrupar os imóveis.")
		return
	}

	httpresp.OK(c, report.PropertiesByTipo(properties))
}

func (h *DashboardHandler) PropertiesByStatus(c *gin.Context) {
	var properties []models.Property
	if err := h.db.Find(&properties).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao agrupar os imóveis.")
		return
	}

	httpresp.OK(c, report.PropertiesByStatus(properties))
}

// ======================================================
// VISITAS POR IMÓVEL
// ======================================================
func (h *DashboardHandler) VisitsByProperty(c *gin.Context) {
	var visits []models.Visit
	if err := h.db.Find(&visits).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao agrupar as visitas.")
		return
	}

	var properties []models.Property
	if err := h.db.Find(&properties).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao agrupar as visitas.")
		return
	}

	byID := make(map[uint]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	httpresp.OK(c, report.VisitsByProperty(visits, byID))
}

// --------- internos ---------

func (h *DashboardHandler) brokersByID() (map[uint]models.User, error) {
	var brokers []models.User
	if err := h.db.Where("tipo = ?", "corretor").Find(&brokers).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.User, len(brokers))
	for _, b := range brokers {
		byID[b.ID] = b
	}
	return byID, nil
}
