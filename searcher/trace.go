package searcher

import (
	"fmt"
	"sync"

	"github.com/awalterschulze/gographviz"
	"github.com/rs/zerolog/log"
)

const traceGraph = "search"

// tracer records the top plies of a search as a Graphviz graph. A nil tracer
// records nothing.
type tracer struct {
	sync.Mutex
	maxPly int
	graph  *gographviz.Graph
	count  int
}

// traceNode is a handle on a recorded node; the zero value is not recorded.
type traceNode struct {
	name string
	ply  int
}

func newTracer(maxPly int) *tracer {
	if maxPly <= 0 {
		return nil
	}
	graph := gographviz.NewGraph()
	if err := graph.SetName(traceGraph); err != nil {
		log.Warn().Err(err).Msg("failed to name search trace")
	}
	if err := graph.SetDir(true); err != nil {
		log.Warn().Err(err).Msg("failed to direct search trace")
	}
	return &tracer{maxPly: maxPly, graph: graph}
}

func (t *tracer) root() traceNode {
	if t == nil {
		return traceNode{}
	}
	t.Lock()
	defer t.Unlock()

	node := traceNode{name: "root"}
	t.addNode(node.name, `"root"`)
	return node
}

func (t *tracer) child(parent traceNode, column int) traceNode {
	if t == nil || parent.name == "" || parent.ply >= t.maxPly {
		return traceNode{}
	}
	t.Lock()
	defer t.Unlock()

	t.count++
	node := traceNode{name: fmt.Sprintf("n%d", t.count), ply: parent.ply + 1}
	t.addNode(node.name, fmt.Sprintf(`"c%d"`, column))
	if err := t.graph.AddEdge(parent.name, node.name, true, nil); err != nil {
		log.Warn().Err(err).Msgf("failed to trace edge %s->%s", parent.name, node.name)
	}
	return node
}

// score appends the node's minimax value to its label.
func (t *tracer) score(node traceNode, value int) {
	if t == nil || node.name == "" {
		return
	}
	t.Lock()
	defer t.Unlock()

	n, ok := t.graph.Nodes.Lookup[node.name]
	if !ok {
		return
	}
	label := gographviz.Attr("label")
	current := n.Attrs[label]
	if len(current) < 2 {
		return
	}
	n.Attrs[label] = fmt.Sprintf(`%s\n%+d"`, current[:len(current)-1], value)
}

func (t *tracer) addNode(name, label string) {
	if err := t.graph.AddNode(traceGraph, name, map[string]string{"label": label}); err != nil {
		log.Warn().Err(err).Msgf("failed to trace node %s", name)
	}
}

func (t *tracer) String() string {
	if t == nil {
		return ""
	}
	t.Lock()
	defer t.Unlock()

	return t.graph.String()
}
