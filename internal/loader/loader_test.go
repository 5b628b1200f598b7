package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldeq/internal/fieldtype"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestSymbolTypesParsesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "symbol_types.json", `{"a": "fp", "x": "fp2", "y": "fp4"}`)

	types, err := SymbolTypes(path)
	require.NoError(t, err)
	assert.Equal(t, fieldtype.Fp, types["a"])
	assert.Equal(t, fieldtype.FpExt(2), types["x"])
	assert.Equal(t, fieldtype.FpExt(4), types["y"])
}

func TestSymbolTypesRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "symbol_types.json", `{"a": "fp3"}`)

	_, err := SymbolTypes(path)
	assert.Error(t, err)
}

func TestSymbolTypesRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "symbol_types.json", `{not json`)

	_, err := SymbolTypes(path)
	assert.Error(t, err)
}

func TestCostModelParsesCostsAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cost_model.json", `{
		"costs": {"fp2": {"*const": 2, "Sq": 3}},
		"default_costs": {"+": 1, "mul_const": 9}
	}`)

	m, err := CostModel(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), m.Get("fp2", "*const"))
	assert.Equal(t, uint64(3), m.Get("fp2", "sq"))
	assert.Equal(t, uint64(1), m.Get("anything", "+"))
	assert.Equal(t, uint64(9), m.Get("anything", "*const"))
}

func TestTestCasesSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tests.txt", "(+ a b)\n\n  \n(sq x)\n")

	cases, err := TestCases(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"(+ a b)", "(sq x)"}, cases)
}

func TestTestCasesMissingFileErrors(t *testing.T) {
	_, err := TestCases(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
