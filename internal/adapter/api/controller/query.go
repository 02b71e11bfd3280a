package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDateQuery lê um parâmetro de data no formato 2006-01-02.
// Retorna nil quando o parâmetro está ausente ou malformado.
func parseDateQuery(ctx *gin.Context, name string) *time.Time {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &date
}

// parseEndDateQuery lê um parâmetro de data final, estendido até o fim do
// dia para manter o intervalo inclusivo
func parseEndDateQuery(ctx *gin.Context, name string) *time.Time {
	date := parseDateQuery(ctx, name)
	if date == nil {
		return nil
	}
	end := date.Add(24*time.Hour - time.Nanosecond)
	return &end
}

// parsePageQuery lê os parâmetros de paginação com os valores padrão
func parsePageQuery(ctx *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// parseBoolQuery lê um parâmetro booleano opcional
func parseBoolQuery(ctx *gin.Context, name string) *bool {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}
