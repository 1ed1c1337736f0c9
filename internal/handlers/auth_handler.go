package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/config"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Senha    string `json:"senha" binding:"required,min=6"`
	Telefone string `json:"telefone"`
	Tipo     string `json:"tipo"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = "cliente"
	}
	// Conta admin só nasce pela rota de usuários, com admin logado
	if tipo != "cliente" && tipo != "corretor" {
		httperr.BadRequest(c, "tipo_invalido", "Tipo de usuário inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao processar a senha.")
		return
	}

	user := models.User{
		Nome:      req.Nome,
		Email:     email,
		SenhaHash: string(hashed),
		Telefone:  req.Telefone,
		Tipo:      tipo,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_ja_cadastrado", "Já existe um usuário com esse e-mail.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao criar o usuário.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao gerar o token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"usuario": user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "requisicao_invalida",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "credenciais_invalidas", "E-mail ou senha incorretos.")
			return
		}
		httperr.Internal(c, "erro_interno", "Erro ao buscar o usuário.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		httperr.Unauthorized(c, "credenciais_invalidas", "E-mail ou senha incorretos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao gerar o token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario": user,
		"token":   token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	expiry := time.Duration(h.config.JWTExpiryHours) * time.Hour

	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(expiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
