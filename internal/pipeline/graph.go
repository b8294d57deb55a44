package pipeline

import (
	"fmt"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
)

// Returns the service chain of the task as a directed graph.
//
// Vertices are keyed "<position> <service>" and linked in execution order.
// Skipped services are drawn dashed; privileged ones are labelled as root.
func (t *Task) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	var prev string
	for i, s := range t.Services {
		id := fmt.Sprintf("%d %s", i+1, s.Name)

		label := s.Name.String()
		if s.AsRoot {
			label += " (root)"
		}

		opts := []func(*graph.VertexProperties){graph.VertexAttribute("label", label)}
		if s.Skip {
			opts = append(opts, graph.VertexAttribute("style", "dashed"))
		}

		if err := g.AddVertex(id, opts...); err != nil {
			return nil, errors.Wrapf(err, "unable to add service %s", id)
		}
		if prev != "" {
			if err := g.AddEdge(prev, id); err != nil {
				return nil, errors.Wrapf(err, "unable to link %s to %s", prev, id)
			}
		}
		prev = id
	}
	return g, nil
}

// Writes the service chain of the task in Graphviz DOT format.
func (t *Task) DOT(w io.Writer) error {
	g, err := t.Graph()
	if err != nil {
		return err
	}
	return draw.DOT(g, w, draw.GraphAttribute("rankdir", "LR"))
}
