package repository

import "context"

// HealthChecker verifica la conexión con la base de datos (keep-alive).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Migrator aplica las migraciones SQL pendientes y devuelve las versiones aplicadas.
type Migrator interface {
	Apply(ctx context.Context) ([]string, error)
}
