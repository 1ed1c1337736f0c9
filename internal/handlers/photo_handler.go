package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/httperr"
	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
	"github.com/BruksfildServices01/imobiliaria-api/internal/storage"
)

const maxPhotoBytes = 10 << 20

type PhotoHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewPhotoHandler(db *gorm.DB, uploader storage.Uploader) *PhotoHandler {
	return &PhotoHandler{db: db, uploader: uploader}
}

// ======================================================
// UPLOAD PHOTO (DONO / ADMIN)
// ======================================================
func (h *PhotoHandler) Upload(c *gin.Context) {
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

	if callerRole(c) != "admin" && property.CorretorID != callerID(c) {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para alterar esse imóvel.")
		return
	}

	fileHeader, err := c.FormFile("foto")
	if err != nil {
		httperr.BadRequest(c, "foto_obrigatoria", "Envie o arquivo no campo 'foto'.")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		httperr.BadRequest(c, "foto_muito_grande", "A foto pode ter no máximo 10MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao ler o arquivo.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao ler o arquivo.")
		return
	}

	processed, err := storage.ProcessPhoto(data)
	if err != nil {
		httperr.BadRequest(c, "foto_invalida", "Arquivo de imagem inválido, use JPEG ou PNG.")
		return
	}

	key := storage.PhotoKey(property.ID)
	url, err := h.uploader.Upload(c.Request.Context(), key, processed, "image/webp")
	if err != nil {
		zap.L().Error("photo upload failed",
			zap.Uint("imovel_id", property.ID),
			zap.Error(err),
		)
		httperr.Internal(c, "erro_upload", "Erro ao enviar a foto.")
		return
	}

	var ordem int64
	h.db.Model(&models.PropertyPhoto{}).Where("imovel_id = ?", property.ID).Count(&ordem)

	photo := models.PropertyPhoto{
		ImovelID: property.ID,
		URL:      url,
		Ordem:    int(ordem) + 1,
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao gravar a foto.")
		return
	}

	// Primeira foto vira a imagem de capa
	if property.Imagem == "" {
		h.db.Model(&property).Update("imagem", url)
	}

	c.JSON(http.StatusCreated, photo)
}

// ======================================================
// LIST PHOTOS (PÚBLICO)
// ======================================================
func (h *PhotoHandler) List(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var photos []models.PropertyPhoto
	if err := h.db.
		Where("imovel_id = ?", id).
		Order("ordem ASC").
		Find(&photos).Error; err != nil {

		httperr.Internal(c, "erro_interno", "Erro ao listar as fotos.")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// ======================================================
// DELETE PHOTO (DONO / ADMIN)
// ======================================================
func (h *PhotoHandler) Delete(c *gin.Context) {
	photoID := parseIDParam(c, "id")
	if photoID == 0 {
		httperr.BadRequest(c, "id_invalido", "ID inválido.")
		return
	}

	var photo models.PropertyPhoto
	if err := h.db.First(&photo, photoID).Error; err != nil {
		httperr.NotFound(c, "foto_nao_encontrada", "Foto não encontrada.")
		return
	}

	var property models.Property
	if err := h.db.First(&property, photo.ImovelID).Error; err != nil {
		httperr.NotFound(c, "imovel_nao_encontrado", "Imóvel não encontrado.")
		return
	}

	if callerRole(c) != "admin" && property.CorretorID != callerID(c) {
		httperr.Forbidden(c, "permissao_negada", "Sem permissão para alterar esse imóvel.")
		return
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		httperr.Internal(c, "erro_interno", "Erro ao remover a foto.")
		return
	}

	// Falha no storage não desfaz a remoção da linha
	if err := h.uploader.Delete(c.Request.Context(), storage.KeyFromURL(photo.URL)); err != nil {
		zap.L().Warn("photo object delete failed",
			zap.String("url", photo.URL),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Foto removida com sucesso."})
}
