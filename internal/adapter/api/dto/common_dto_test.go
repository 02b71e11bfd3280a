package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valores válidos", 2, 20, 2, 20},
		{"página zero vira 1", 0, 10, 1, 10},
		{"página negativa vira 1", -3, 10, 1, 10},
		{"tamanho zero vira padrão", 1, 0, 1, 10},
		{"tamanho acima do limite é travado", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(404, "não encontrado", "cliente inexistente")
	assert.Equal(t, 404, resp.Code)
	assert.Equal(t, "não encontrado", resp.Message)
	assert.Equal(t, "cliente inexistente", resp.Details)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse("ok", map[string]int{"total": 1})
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
	assert.NotNil(t, resp.Data)
}
