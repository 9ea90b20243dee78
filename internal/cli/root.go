// Package cli implementa opsctl, la herramienta de operación: migraciones, códigos de invitación,
// keep-alive y tokens de desarrollo.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
)

// Backend casos de uso que necesitan los comandos con acceso a la base.
type Backend struct {
	Invitations *admin.InvitationUseCase
	Maintenance *system.MaintenanceUseCase
	Close       func()
}

// Connector abre el backend; en producción conecta a PostgreSQL, en tests usa el store en memoria.
type Connector func(ctx context.Context) (*Backend, error)

// RootOptions flags globales.
type RootOptions struct {
	Format  string // text | json | yaml
	Connect Connector
}

var validFormats = []string{"text", "json", "yaml"}

// NewRootCommand construye el comando raíz. connect puede ser nil para comandos que no tocan la base.
func NewRootCommand(connect Connector) *cobra.Command {
	opts := &RootOptions{Connect: connect}

	cmd := &cobra.Command{
		Use:   "opsctl",
		Short: "Operación de SellerOps API",
		Long:  "Herramienta de operación de SellerOps: migraciones, códigos de invitación y keep-alive.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("formato inválido %q: debe ser uno de %v", opts.Format, validFormats)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json|yaml)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newPingCommand(opts))
	cmd.AddCommand(newInviteCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	cmd.AddCommand(newHashTokenCommand(opts))
	return cmd
}

// withBackend abre el backend, ejecuta fn y lo cierra.
func withBackend(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, b *Backend) error) error {
	if opts.Connect == nil {
		return fmt.Errorf("opsctl: sin conexión configurada")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := opts.Connect(ctx)
	if err != nil {
		return fmt.Errorf("opsctl: conectar: %w", err)
	}
	if b.Close != nil {
		defer b.Close()
	}
	return fn(ctx, b)
}
