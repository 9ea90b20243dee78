package ports

import (
	"context"
	"errors"
)

// ErrLLMNotConfigured el proveedor no tiene API key configurada.
var ErrLLMNotConfigured = errors.New("AI: proveedor no configurado")

// LLMService define el puerto de salida hacia el proveedor de completions (Anthropic, Gemini, mock).
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación solo conoce este contrato.
type LLMService interface {
	// Complete envía el par de prompts sistema/usuario con el modelo configurado y devuelve
	// el texto plano de la respuesta. El contexto debe llevar un timeout.
	Complete(ctx context.Context, system, user string) (string, error)
}
