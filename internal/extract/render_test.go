package extract

import (
	"testing"

	"fieldeq/internal/bridge"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrintsSExpression(t *testing.T) {
	g := &bridge.Graph{
		Nodes:   map[string]*bridge.Node{},
		Classes: map[string][]string{},
	}
	g.Nodes["x.0"] = &bridge.Node{ID: "x.0", Op: "symbol", Symbol: "x", Class: "x"}
	g.Nodes["c.0"] = &bridge.Node{ID: "c.0", Op: "const", Value: 2, Class: "c"}
	g.Nodes["r.0"] = &bridge.Node{ID: "r.0", Op: "*", Children: []string{"x.0", "c.0"}, Class: "r"}
	g.Classes["x"] = []string{"x.0"}
	g.Classes["c"] = []string{"c.0"}
	g.Classes["r"] = []string{"r.0"}

	sel := Selection{"x": "x.0", "c": "c.0", "r": "r.0"}
	assert.Equal(t, "(* x 2)", Render(g, sel, "r"))
}
