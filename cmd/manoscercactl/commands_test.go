package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manoscerca.app/internal/share"
	"manoscerca.app/internal/validation"
)

// run executes the command line against db and returns what it printed.
func run(t *testing.T, db, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(append([]string{"--db", db}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func addArgs(name, category, lat, lng string) []string {
	return []string{
		"add",
		"--name", name,
		"--email", strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com",
		"--phone", "+34 612 345 678",
		"--category", category,
		"--description", "Arreglos a domicilio.",
		"--lat", lat,
		"--lng", lng,
	}
}

func newDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "data", "manoscerca.db")
}

func TestCategories(t *testing.T) {
	out, _, err := run(t, newDB(t), "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "gasfiteria")
	assert.Contains(t, out, "Reparaciones generales")
}

func TestAddListShow(t *testing.T) {
	db := newDB(t)

	out, _, err := run(t, db, "", addArgs("María González", "carpinteria", "40.4158", "-3.7038")...)
	require.NoError(t, err)
	assert.Equal(t, "registered provider 1 (María González)\n", out)

	_, _, err = run(t, db, "", addArgs("Ana López", "electricidad", "40.4198", "-3.7078")...)
	require.NoError(t, err)

	out, _, err = run(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "María González")
	assert.Contains(t, out, "Ana López")
	assert.Contains(t, out, "Distancia no disponible")

	out, _, err = run(t, db, "", "list", "--category", "electricidad")
	require.NoError(t, err)
	assert.NotContains(t, out, "María González")
	assert.Contains(t, out, "Ana López")

	out, _, err = run(t, db, "", "list", "--radius", "0.1", "--lat", "40.4158", "--lng", "-3.7038")
	require.NoError(t, err)
	assert.Contains(t, out, "0.0 m")
	assert.NotContains(t, out, "Ana López")

	out, _, err = run(t, db, "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Carpintería")
	assert.Contains(t, out, "+34 612 345 678")
}

func TestAddReportsMissingFields(t *testing.T) {
	db := newDB(t)

	_, _, err := run(t, db, "", "add", "--name", "Lucía", "--email", "lucia@email.com", "--category", "pintura", "--description", "x", "--lat", "40.4")
	require.Error(t, err)

	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"phone", "lng"}, verr.Missing)

	out, _, err := run(t, db, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "no providers match\n", out)
}

func TestAddWarnsAboutEmail(t *testing.T) {
	args := addArgs("Lucía Pérez", "pintura", "40.41", "-3.70")
	args[4] = "lucia@"

	_, errOut, err := run(t, newDB(t), "", args...)
	require.NoError(t, err)
	assert.Contains(t, errOut, "warning: email")
}

func TestShareAndImportLink(t *testing.T) {
	db := newDB(t)
	_, _, err := run(t, db, "", addArgs("Javier Martínez", "jardineria", "40.4218", "-3.7098")...)
	require.NoError(t, err)

	out, _, err := run(t, db, "", "share", "1", "--base-url", "https://manoscerca.example/?x=1")
	require.NoError(t, err)
	link := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(link, "https://manoscerca.example/?share="), link)

	out, _, err = run(t, db, "n\n", "import-link", link)
	require.NoError(t, err)
	assert.Contains(t, out, "Import Javier Martínez (Jardinería)?")
	assert.Contains(t, out, "import cancelled")

	out, _, err = run(t, db, "", "import-link", "--yes", link)
	require.NoError(t, err)
	assert.Equal(t, "imported provider 2 (Javier Martínez)\n", out)

	_, _, err = run(t, db, "", "import-link", "--yes", "https://manoscerca.example/")
	var derr *share.DecodeError
	require.True(t, errors.As(err, &derr))
}

func TestExportAndImportFile(t *testing.T) {
	db := newDB(t)
	_, _, err := run(t, db, "", addArgs("Carlos Rodríguez", "gasfiteria", "40.4178", "-3.7058")...)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "perfil.json")
	_, _, err = run(t, db, "", "export", "1", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"Carlos Rodríguez\"")

	out, _, err := run(t, db, "y\n", "import-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported provider 2 (Carlos Rodríguez)")

	out, _, err = run(t, db, "", "export", "2", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "\"id\": 2")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,2]"), 0o644))
	_, _, err = run(t, db, "", "import-file", "--yes", bad)
	require.Error(t, err)
}

func TestDeleteAndClear(t *testing.T) {
	db := newDB(t)
	for _, name := range []string{"Uno", "Dos", "Tres"} {
		_, _, err := run(t, db, "", addArgs(name, "mecanica", "40.41", "-3.70")...)
		require.NoError(t, err)
	}

	out, _, err := run(t, db, "", "delete", "2")
	require.NoError(t, err)
	assert.Equal(t, "deleted provider 2\n", out)

	_, _, err = run(t, db, "", "delete", "2")
	require.NoError(t, err)

	_, _, err = run(t, db, "", "delete", "dos")
	require.Error(t, err)

	out, _, err = run(t, db, "", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "clear cancelled")

	out, _, err = run(t, db, "", "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "deleted 2 providers\n", out)

	out, _, err = run(t, db, "", addArgs("Cuatro", "mecanica", "40.41", "-3.70")...)
	require.NoError(t, err)
	assert.Equal(t, "registered provider 4 (Cuatro)\n", out)
}

func TestShowUnknownProvider(t *testing.T) {
	_, _, err := run(t, newDB(t), "", "show", "42")
	require.Error(t, err)
}
