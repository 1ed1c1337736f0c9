package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/middleware"
)

// parseIDParam lê um parâmetro de rota numérico. Devolve 0 quando o
// valor não é um inteiro positivo.
func parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func callerID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func callerRole(c *gin.Context) string {
	return c.MustGet(middleware.ContextUserRole).(string)
}

var businessMessages = map[string]string{
	"imovel_nao_encontrado":   "Imóvel não encontrado.",
	"imovel_indisponivel":     "O imóvel não está disponível.",
	"corretor_nao_encontrado": "Corretor não encontrado.",
	"horario_indisponivel":    "O corretor já tem visita confirmada nesse horário.",
	"permissao_negada":        "Sem permissão para essa operação.",
	"status_invalido":         "Status inválido.",
	"tipo_invalido":           "Tipo inválido.",
	"valor_invalido":          "Valor precisa ser maior que zero.",
	"data_inicio_obrigatoria": "Informe a data de início.",
}

// writeDomainError traduz erros de negócio dos use cases para HTTP.
func writeDomainError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg := businessMessages[code]
		if msg == "" {
			msg = "Operação inválida."
		}

		switch {
		case strings.HasSuffix(code, "_nao_encontrado"):
			httperr.NotFound(c, code, msg)
		case code == "permissao_negada":
			httperr.Forbidden(c, code, msg)
		case code == "horario_indisponivel" || code == "imovel_indisponivel":
			httperr.Conflict(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "registro_nao_encontrado", "Registro não encontrado.")
		return
	}

	httperr.Internal(c, "erro_interno", "Erro interno.")
}

// parsePagination lê ?page e ?limit com os defaults da API.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
