// Package topsort provides topological sorting with cycle detection.
package topsort

import (
	"fmt"
	"sort"
	"strings"
)

// Graph represents a directed graph for topological sorting.
// The keys are node names, values are lists of dependencies (edges point to dependencies).
// Edge order is significant: dependencies are visited in the order listed.
type Graph map[string][]string

// MissingError reports a node that is referenced but not defined in the graph.
// From is empty when the missing node was requested directly.
type MissingError struct {
	Node string
	From string
}

func (e *MissingError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("node %q not found in graph", e.Node)
	}
	return fmt.Sprintf("%q depends on undefined node %q", e.From, e.Node)
}

// CycleError reports a dependency cycle. Path lists the cycle starting and
// ending with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected involving %q (%s)", e.Path[0], strings.Join(e.Path, " -> "))
}

// Sort performs topological sort on the graph, returning nodes in dependency order.
// Dependencies appear before dependents in the result, each node at most once.
// Returns *CycleError if a cycle is detected and *MissingError if a node is undefined.
//
// The nodes parameter specifies which nodes to sort. If nil, all nodes in the graph are sorted.
// When nodes is provided, only those nodes and their transitive dependencies are included.
func Sort(g Graph, nodes []string) ([]string, error) {
	if nodes == nil {
		nodes = make([]string, 0, len(g))
		for name := range g {
			nodes = append(nodes, name)
		}
		sort.Strings(nodes)
	}

	var result []string
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var stack []string

	var visit func(name, from string) error
	visit = func(name, from string) error {
		if inStack[name] {
			return &CycleError{Path: cyclePath(stack, name)}
		}
		if visited[name] {
			return nil
		}

		deps, exists := g[name]
		if !exists {
			return &MissingError{Node: name, From: from}
		}

		inStack[name] = true
		stack = append(stack, name)

		for _, dep := range deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		visited[name] = true
		inStack[name] = false
		result = append(result, name)

		return nil
	}

	for _, name := range nodes {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// cyclePath extracts the cycle from the DFS stack, closing it with name.
func cyclePath(stack []string, name string) []string {
	for i, n := range stack {
		if n == name {
			path := append([]string(nil), stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}
