// Package loader reads the three §6 input files — symbol_types.json,
// cost_model.json, tests.txt — into the shapes internal/fieldtype,
// internal/cost and internal/parser expect.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/iancoleman/strcase"

	"fieldeq/internal/cost"
	ferrors "fieldeq/internal/errors"
	"fieldeq/internal/fieldtype"
)

// SymbolTypes loads symbol_types.json ("a": "fp", "x": "fp2", ...) into
// the map internal/fieldtype.Analysis keys its lookups by. Field names
// are validated eagerly — §7.2 requires this be a load-time fatal error,
// not a deferred one discovered mid-saturation.
func SymbolTypes(path string) (map[string]fieldtype.FieldType, error) {
	raw, err := readJSONObject(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]fieldtype.FieldType, len(raw))
	for symbol, value := range raw {
		fieldName, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("loader: %s: symbol %q: expected a string field name", path, symbol)
		}
		ft, err := fieldtype.ParseFieldName(normalizeFieldName(fieldName))
		if err != nil {
			return nil, ferrors.TypeDomainError(fieldName)
		}
		out[symbol] = ft
	}
	return out, nil
}

// costModelDoc mirrors cost_model.json's exact wire shape (§6):
// {"costs": {field: {op: uint}}, "default_costs": {op: uint}}.
type costModelDoc struct {
	Costs        map[string]map[string]uint64 `json:"costs"`
	DefaultCosts map[string]uint64             `json:"default_costs"`
}

// CostModel loads cost_model.json into a cost.Model. Op and field keys
// are normalized (strcase.ToSnake, lowercased) so "MulConst"/"mul_const"
// in user JSON lands on the same table entry as the canonical op-key
// strings internal/cost.Get expects, without requiring the JSON author
// to match internal casing exactly.
func CostModel(path string) (cost.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cost.Model{}, fmt.Errorf("loader: %w", err)
	}

	var doc costModelDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return cost.Model{}, fmt.Errorf("loader: %s: malformed JSON: %w", path, err)
	}

	m := cost.Model{
		Costs:        make(map[string]map[string]uint64, len(doc.Costs)),
		DefaultCosts: make(map[string]uint64, len(doc.DefaultCosts)),
	}
	for field, ops := range doc.Costs {
		normField := normalizeFieldName(field)
		table := make(map[string]uint64, len(ops))
		for op, c := range ops {
			table[normalizeOpKey(op)] = c
		}
		m.Costs[normField] = table
	}
	for op, c := range doc.DefaultCosts {
		m.DefaultCosts[normalizeOpKey(op)] = c
	}
	return m, nil
}

// TestCases reads tests.txt, returning one S-expression per non-blank
// line (§6: "one S-expression per non-blank line").
func TestCases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	var cases []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cases = append(cases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return cases, nil
}

func readJSONObject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("loader: %s: malformed JSON: %w", path, err)
	}
	return raw, nil
}

// normalizeFieldName lowercases a field-name string; "fp2", "FP2" and
// "Fp2" should all resolve to the same lattice point.
func normalizeFieldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mulConstAliases are the spellings a cost_model.json author might use
// for the "*const" op key, which can't round-trip through strcase.ToSnake
// on its own since it mixes a symbol with a word.
var mulConstAliases = map[string]bool{
	"mul_const": true, "mulconst": true, "mul-const": true, "star_const": true,
}

// normalizeOpKey canonicalizes an operator key from user JSON (which may
// arrive as "MulConst", "mul-const", "Sq" or "INV") to the exact keys
// internal/cost's table uses ("+", "-", "*", "*const", "inv", "sq",
// "const", "symbol"). Already-canonical symbolic keys pass through
// untouched.
func normalizeOpKey(op string) string {
	trimmed := strings.TrimSpace(op)
	switch trimmed {
	case "+", "-", "*", "*const":
		return trimmed
	}

	snake := strcase.ToSnake(trimmed)
	if mulConstAliases[snake] {
		return "*const"
	}
	return snake
}
