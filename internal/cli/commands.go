package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/pkg/jwt"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, opts, func(ctx context.Context, b *Backend) error {
				out, err := b.Maintenance.RunMigrations(ctx)
				if err != nil {
					return err
				}
				lines := []string{out.Message}
				for _, v := range out.Applied {
					lines = append(lines, "  + "+v)
				}
				return newPrinter(opts, cmd.OutOrStdout()).result(out, lines...)
			})
		},
	}
}

func newPingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Keep-alive: SELECT 1 contra la base y ping a la caché",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, opts, func(ctx context.Context, b *Backend) error {
				out, err := b.Maintenance.Ping(ctx)
				if err != nil {
					return err
				}
				line := fmt.Sprintf("%s (base: %s, caché: %s)", out.Status, out.Database, out.Cache)
				return newPrinter(opts, cmd.OutOrStdout()).result(out, line)
			})
		},
	}
}

func newInviteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Gestiona códigos de invitación",
	}

	var (
		code     string
		maxUses  int
		expHours int
		adminID  string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un código (aleatorio si no se indica --code)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, opts, func(ctx context.Context, b *Backend) error {
				inv, err := b.Invitations.Create(ctx, adminID, dto.CreateInvitationRequest{
					Code: code, MaxUses: maxUses, ExpiresInHrs: expHours,
				})
				if err != nil {
					return err
				}
				return newPrinter(opts, cmd.OutOrStdout()).result(inv, inv.Code)
			})
		},
	}
	create.Flags().StringVar(&code, "code", "", "código a crear")
	create.Flags().IntVar(&maxUses, "max-uses", 1, "usos permitidos (0 = ilimitado)")
	create.Flags().IntVar(&expHours, "expires-hours", 0, "horas de vigencia (0 = sin vencimiento)")
	create.Flags().StringVar(&adminID, "admin", "opsctl", "id del creador")

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los códigos más recientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, opts, func(ctx context.Context, b *Backend) error {
				items, err := b.Invitations.List(ctx, dto.PageRequest{Limit: limit})
				if err != nil {
					return err
				}
				lines := make([]string, 0, len(items))
				for _, inv := range items {
					limitStr := "∞"
					if inv.MaxUses > 0 {
						limitStr = fmt.Sprint(inv.MaxUses)
					}
					lines = append(lines, fmt.Sprintf("%-16s %d/%s", inv.Code, inv.UseCount, limitStr))
				}
				return newPrinter(opts, cmd.OutOrStdout()).result(items, lines...)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "cantidad máxima")

	cmd.AddCommand(create, list)
	return cmd
}

// newTokenCommand firma un JWT local con el mismo formato que el proveedor alojado.
func newTokenCommand(opts *RootOptions) *cobra.Command {
	var (
		secret   string
		userID   string
		email    string
		audience string
		minutes  int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un token de desarrollo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := jwt.Generate(secret, userID, email, "", audience, minutes)
			if err != nil {
				return err
			}
			out := map[string]any{
				"token":      tok,
				"expires_at": time.Now().Add(time.Duration(minutes) * time.Minute).UTC(),
			}
			return newPrinter(opts, cmd.OutOrStdout()).result(out, tok)
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "secreto HS256 (por defecto JWT_SECRET)")
	cmd.Flags().StringVar(&userID, "user", "", "id del usuario (sub)")
	cmd.Flags().StringVar(&email, "email", "", "email del usuario")
	cmd.Flags().StringVar(&audience, "audience", "authenticated", "audiencia")
	cmd.Flags().IntVar(&minutes, "minutes", 60, "vigencia en minutos")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// newHashTokenCommand genera el valor de MIGRATION_TOKEN_HASH.
func newHashTokenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Hash bcrypt para MIGRATION_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash-token: %w", err)
			}
			return newPrinter(opts, cmd.OutOrStdout()).result(map[string]string{"hash": string(hash)}, string(hash))
		},
	}
}
