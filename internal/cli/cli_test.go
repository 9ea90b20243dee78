package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
	"github.com/jhoicas/SellerOps-api/internal/cli"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/cache"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
	"github.com/jhoicas/SellerOps-api/pkg/jwt"
)

func memoryConnector(store *memory.Store) cli.Connector {
	return func(context.Context) (*cli.Backend, error) {
		return &cli.Backend{
			Invitations: admin.NewInvitationUseCase(store.Invitations()),
			Maintenance: system.NewMaintenanceUseCase(store, cache.NoopSuggestionCache{}, nil, nil),
		}, nil
	}
}

func run(t *testing.T, connect cli.Connector, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(connect)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcomandos(t *testing.T) {
	cmd := cli.NewRootCommand(nil)
	assert.Equal(t, "opsctl", cmd.Use)

	for _, name := range []string{"migrate", "ping", "invite", "token", "hash-token"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	create, _, err := cmd.Find([]string{"invite", "create"})
	require.NoError(t, err)
	assert.NotNil(t, create.Flags().Lookup("max-uses"))
	assert.NotNil(t, create.Flags().Lookup("expires-hours"))

	f := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, f)
	assert.Equal(t, "text", f.DefValue)
}

func TestFormatoInvalido(t *testing.T) {
	_, err := run(t, nil, "--format", "yaml", "hash-token", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato inválido")
}

func TestInviteCreateYList(t *testing.T) {
	store := memory.NewStore()
	connect := memoryConnector(store)

	out, err := run(t, connect, "invite", "create", "--code", "beta-2025", "--max-uses", "3")
	require.NoError(t, err)
	assert.Equal(t, "BETA-2025", strings.TrimSpace(out))

	out, err = run(t, connect, "--format", "json", "invite", "list")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "BETA-2025", items[0]["code"])
	assert.EqualValues(t, 3, items[0]["max_uses"])

	out, err = run(t, connect, "invite", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0/3")
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestInviteList_Texto(t *testing.T) {
	connect := memoryConnector(memory.NewStore())
	_, err := run(t, connect, "invite", "create", "--code", "BETA-2025", "--max-uses", "3")
	require.NoError(t, err)

	out, err := run(t, connect, "invite", "list")
	require.NoError(t, err)
	golden(t).Assert(t, "invite_list", []byte(out))
}

func TestInviteList_YAML(t *testing.T) {
	connect := memoryConnector(memory.NewStore())
	_, err := run(t, connect, "invite", "create", "--code", "VIP", "--max-uses", "0")
	require.NoError(t, err)

	out, err := run(t, connect, "--format", "yaml", "invite", "list")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "VIP", items[0]["code"])
	assert.Equal(t, "opsctl", items[0]["created_by"])
}

func TestPing(t *testing.T) {
	store := memory.NewStore()
	out, err := run(t, memoryConnector(store), "ping")
	require.NoError(t, err)
	golden(t).Assert(t, "ping", []byte(out))

	store.PingErr = errors.New("conexión rechazada")
	_, err = run(t, memoryConnector(store), "ping")
	require.Error(t, err)
}

func TestMigrate_SinMigrator(t *testing.T) {
	_, err := run(t, memoryConnector(memory.NewStore()), "migrate")
	require.Error(t, err)
}

func TestSinConexion(t *testing.T) {
	_, err := run(t, nil, "ping")
	require.Error(t, err)

	failing := func(context.Context) (*cli.Backend, error) { return nil, errors.New("sin red") }
	_, err = run(t, failing, "invite", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin red")
}

func TestHashToken(t *testing.T) {
	out, err := run(t, nil, "hash-token", "s3creto")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3creto")))

	_, err = run(t, nil, "hash-token")
	require.Error(t, err, "requiere exactamente un argumento")
}

func TestToken(t *testing.T) {
	out, err := run(t, nil, "token", "--secret", "dev-secret", "--user", "u-1", "--email", "a@b.co")
	require.NoError(t, err)

	claims, err := jwt.Parse("dev-secret", strings.TrimSpace(out), jwt.VerifyOptions{Audience: "authenticated"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "a@b.co", claims.Email)
}
