package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss lo devuelve SuggestionCache.Get cuando no hay valor guardado.
var ErrCacheMiss = errors.New("cache: sin valor")

// SuggestionCache guarda el último texto generado por el LLM por usuario y tipo,
// para que sobreviva a recargas del cliente.
type SuggestionCache interface {
	Get(ctx context.Context, userID, recType string) (string, error)
	Set(ctx context.Context, userID, recType, content string) error
	Ping(ctx context.Context) error
}
