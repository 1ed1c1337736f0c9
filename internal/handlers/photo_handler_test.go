package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testAPI) uploadPhoto(t *testing.T, token string, propertyID uint, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("foto", "casa.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/imoveis/%d/fotos", propertyID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoUploadAndList(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	id := api.createProperty(t, corretor)

	w := api.uploadPhoto(t, corretor, id, testPNG(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	photo := decode(t, w)
	assert.Equal(t, float64(1), photo["ordem"])
	assert.NotEmpty(t, photo["url"])

	// Primeira foto vira capa do imóvel
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/imoveis/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, photo["url"], decode(t, w)["imagem"])

	// Listagem pública
	w = api.request(t, http.MethodGet, fmt.Sprintf("/api/imoveis/%d/fotos", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPhotoUploadRejectsGarbage(t *testing.T) {
	api := newTestAPI(t)
	corretor := api.register(t, "Ana", "ana@imob.com", "corretor")

	id := api.createProperty(t, corretor)

	w := api.uploadPhoto(t, corretor, id, []byte("definitivamente nao e uma imagem"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "foto_invalida", decode(t, w)["error"])
}

func TestPhotoDelete(t *testing.T) {
	api := newTestAPI(t)
	dona := api.register(t, "Ana", "ana@imob.com", "corretor")
	outro := api.register(t, "Bruno", "bruno@imob.com", "corretor")

	id := api.createProperty(t, dona)

	w := api.uploadPhoto(t, dona, id, testPNG(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	photoID := uint(decode(t, w)["id"].(float64))

	path := fmt.Sprintf("/api/fotos/%d", photoID)

	w = api.request(t, http.MethodDelete, path, outro, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.request(t, http.MethodDelete, path, dona, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.request(t, http.MethodDelete, path, dona, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoUploadForbiddenForOtherBroker(t *testing.T) {
	api := newTestAPI(t)
	dona := api.register(t, "Ana", "ana@imob.com", "corretor")
	outro := api.register(t, "Bruno", "bruno@imob.com", "corretor")

	id := api.createProperty(t, dona)

	w := api.uploadPhoto(t, outro, id, testPNG(t))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
