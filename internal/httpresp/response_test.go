package httpresp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)

	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.PaginaAtual)
	assert.Equal(t, 3, p.TotalPaginas)
	assert.Equal(t, 10, p.ItensPagina)
}

func TestNewPaginationExactDivision(t *testing.T) {
	p := NewPagination(30, 1, 10)
	assert.Equal(t, 3, p.TotalPaginas)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(0, 1, 10)
	assert.Equal(t, 0, p.TotalPaginas)
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(5, 1, 0)
	assert.Equal(t, 5, p.TotalPaginas)
	assert.Equal(t, 1, p.ItensPagina)
}
