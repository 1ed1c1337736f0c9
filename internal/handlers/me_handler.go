package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, callerID(c)).Error; err != nil {
		httperr.NotFound(c, "usuario_nao_encontrado", "Usuário não encontrado.")
		return
	}

	response := gin.H{"usuario": user}

	// Cliente carrega junto o perfil, quando existe
	if user.Tipo == "cliente" {
		var client models.Client
		if err := h.db.Where("usuario_id = ?", user.ID).First(&client).Error; err == nil {
			response["cliente"] = client
		}
	}

	c.JSON(http.StatusOK, response)
}
