package dto

// ErrorResponse é o corpo padrão das respostas de erro da API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse embala uma mensagem de sucesso com dados opcionais
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse monta uma resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse monta uma resposta de erro com o código HTTP
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// PaginationParams agrupa página e tamanho de página já saneados
type PaginationParams struct {
	Page     int
	PageSize int
}

// GetPagination aplica os valores padrão e o teto de itens por página
func GetPagination(page, pageSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100 // teto por página
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
	}
}

// TotalPages calcula o total de páginas para o total de registros
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
