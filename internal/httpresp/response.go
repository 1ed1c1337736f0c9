package httpresp

import "github.com/gin-gonic/gin"

type Pagination struct {
	Total        int64 `json:"total"`
	PaginaAtual  int   `json:"pagina_atual"`
	TotalPaginas int   `json:"total_paginas"`
	ItensPagina  int   `json:"itens_por_pagina"`
}

type PagedResponse[T any] struct {
	Dados     []T        `json:"dados"`
	Paginacao Pagination `json:"paginacao"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Paged[T any](c *gin.Context, data []T, total int64, page, limit int) {
	c.JSON(200, PagedResponse[T]{
		Dados:     data,
		Paginacao: NewPagination(total, page, limit),
	})
}

func NewPagination(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:        total,
		PaginaAtual:  page,
		TotalPaginas: totalPages,
		ItensPagina:  limit,
	}
}
