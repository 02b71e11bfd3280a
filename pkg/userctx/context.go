package userctx

import (
	"context"
)

type contextKey string

const (
	// userIDKey é a chave usada para armazenar o user ID no contexto
	userIDKey contextKey = "user_id"
)

// SetUserIDContext define o user ID no contexto
func SetUserIDContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext obtém o user ID do contexto
func GetUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}
