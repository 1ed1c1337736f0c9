package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// ======================================================
// LIST USERS (ADMIN)
// ======================================================
func (h *UserHandler) List(c *gin.Context) {
	q := h.db.Model(&models.User{})

	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao listar usuários.")
		return
	}

	c.JSON(http.StatusOK, users)
}

// ======================================================
// GET USER (ADMIN OU O PRÓPRIO)
// ======================================================
func (h *UserHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	if callerRole(c) != "admin" && callerID(c) != id {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para ver esse usuário.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "usuario_nao_encontrado", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ======================================================
// CREATE USER (ADMIN)
// ======================================================

type CreateUserRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Senha    string `json:"senha" binding:"required,min=6"`
	Telefone string `json:"telefone"`
	Tipo     string `json:"tipo" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	if req.Tipo != "admin" && req.Tipo != "corretor" && req.Tipo != "cliente" {
		httperr.BadRequest(c, "tipo_invalido", "Tipo de usuário inválido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao processar a senha.")
		return
	}

	user := models.User{
		Nome:      req.Nome,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		SenhaHash: string(hashed),
		Telefone:  req.Telefone,
		Tipo:      req.Tipo,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_ja_cadastrado", "Já existe um usuário com esse e-mail.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao criar o usuário.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ======================================================
// UPDATE USER (ADMIN OU O PRÓPRIO)
// ======================================================

type UpdateUserRequest struct {
	Nome     *string `json:"nome"`
	Email    *string `json:"email"`
	Senha    *string `json:"senha"`
	Telefone *string `json:"telefone"`
	Tipo     *string `json:"tipo"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	role := callerRole(c)
	if role != "admin" && callerID(c) != id {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para alterar esse usuário.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "usuario_nao_encontrado", "Usuário não encontrado.")
		return
	}

	if req.Nome != nil {
		user.Nome = *req.Nome
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Telefone != nil {
		user.Telefone = *req.Telefone
	}
	if req.Senha != nil {
		if len(*req.Senha) < 6 {
			httperr.BadRequest(c, "senha_curta", "A senha precisa ter ao menos 6 caracteres.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "erro_interno", "Erro ao processar a senha.")
			return
		}
		user.SenhaHash = string(hashed)
	}

	// Mudança de papel é privilégio de admin
	if req.Tipo != nil && *req.Tipo != user.Tipo {
		if role != "admin" {
			httperr.Forbidden(c, "permissao_negada", "Apenas admin pode alterar o tipo de usuário.")
			return
		}
		if *req.Tipo != "admin" && *req.Tipo != "corretor" && *req.Tipo != "cliente" {
			httperr.BadRequest(c, "tipo_invalido", "Tipo de usuário inválido.")
			return
		}
		user.Tipo = *req.Tipo
	}

	if err := h.db.Save(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_ja_cadastrado", "Já existe um usuário com esse e-mail.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao atualizar o usuário.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ======================================================
// DELETE USER (ADMIN)
// ======================================================
func (h *UserHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	result := h.db.Delete(&models.User{}, id)
	if result.Error != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover o usuário.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "usuario_nao_encontrado", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido com sucesso."})
}
