package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/repository/memory"
	"github.com/noah-isme/studio-api/internal/router"
	"github.com/noah-isme/studio-api/internal/service"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate(context.Context, string) (string, error) {
	return "Olá! Até amanhã.", nil
}

func newServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := memory.New()
	svcs := service.New(service.Repositories{
		Students:     db.Students(),
		Schedules:    db.Schedules(),
		Transactions: db.Transactions(),
	}, service.Options{Generator: fixedGenerator{}})
	srv := httptest.NewServer(router.New(router.NewHandlers(svcs, nil), router.Options{StoreConfigured: true}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func run(t *testing.T, api string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", api}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestStudentsCommands(t *testing.T) {
	api := newServer(t)

	out, err := run(t, api, "students", "add", "--name", "Ana Souza", "--email", "ana@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Aluno cadastrado com sucesso!")

	out, err = run(t, api, "students", "edit", "1", "--plan", "Anual")
	require.NoError(t, err)
	assert.Contains(t, out, "Aluno atualizado")

	out, err = run(t, api, "students", "list", "--search", "ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "Anual")

	_, err = run(t, api, "students", "deactivate", "1")
	require.NoError(t, err)

	out, err = run(t, api, "students", "list", "--status", "Ativo")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ana Souza")

	_, err = run(t, api, "students", "edit", "99", "--name", "X")
	assert.Error(t, err)
}

func TestTransactionCommands(t *testing.T) {
	api := newServer(t)

	_, err := run(t, api, "tx", "add", "--description", "Mensalidade", "--amount", "200", "--due", "2024-05-10")
	require.NoError(t, err)

	out, err := run(t, api, "tx", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "200.00")
	assert.Contains(t, out, "Pendente")

	_, err = run(t, api, "tx", "toggle", "1")
	require.NoError(t, err)

	out, err = run(t, api, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Pago")

	_, err = run(t, api, "tx", "add", "--description", "x", "--amount", "abc", "--due", "2024-05-10")
	assert.EqualError(t, err, `invalid amount "abc"`)

	_, err = run(t, api, "tx", "delete", "1")
	require.NoError(t, err)
	out, err = run(t, api, "tx", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Mensalidade")
}

func TestScheduleDraftAndExport(t *testing.T) {
	api := newServer(t)
	_, err := run(t, api, "students", "add", "--name", "Bruno", "--email", "b@x.com")
	require.NoError(t, err)

	_, err = run(t, api, "schedules", "add", "--student", "1", "--at", "2030-01-01T10:00:00Z", "--draft-notes")
	require.NoError(t, err)
	out, err := run(t, api, "schedules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bruno")
	assert.Contains(t, out, "Olá! Até amanhã.")

	out, err = run(t, api, "draft", "message", "1", "--intent", "lembrete")
	require.NoError(t, err)
	assert.Contains(t, out, "https://wa.me/?text=")

	dir := t.TempDir()
	out, err = run(t, api, "export", "--format", "csv", "--out", dir)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.Equal(t, dir, filepath.Dir(path))
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "Bruno")
}
