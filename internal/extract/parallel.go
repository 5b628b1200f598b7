package extract

import (
	"sync"

	"github.com/sasha-s/go-deadlock"

	"fieldeq/internal/bridge"
)

// Both runs the tree extractor and the greedy DAG extractor concurrently
// — they are independent read-only passes over the same bridge.Graph —
// and returns their selections together. §4.7 notes a CLI may want both
// admissible results (tree-optimal and DAG-admissible) side by side for
// every test case, so running them concurrently rather than back to
// back halves the wall-clock cost of reporting both.
func Both(g *bridge.Graph) (tree, greedy Selection) {
	var mu deadlock.Mutex
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		sel := Tree(g)
		mu.Lock()
		tree = sel
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		sel := Greedy(g)
		mu.Lock()
		greedy = sel
		mu.Unlock()
	}()
	wg.Wait()

	return tree, greedy
}
