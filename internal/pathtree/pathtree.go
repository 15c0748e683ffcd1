// Package pathtree groups tasks by their category path for display.
package pathtree

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Veraticus/tareas/internal/model"
)

// UnassignedName labels the bucket of tasks without a category path.
const UnassignedName = "Sin asignar"

// Node is one distinct path prefix. Tasks holds only the tasks whose path is
// exactly Path; tasks deeper in the tree live in the children.
type Node struct {
	Name     string
	Path     []string
	Tasks    []model.Task
	Children []*Node
}

// Count is the number of tasks whose path equals this node's path.
func (n *Node) Count() int {
	return len(n.Tasks)
}

// Total is the number of tasks at or below this node.
func (n *Node) Total() int {
	total := len(n.Tasks)
	for _, child := range n.Children {
		total += child.Total()
	}
	return total
}

// Tree is the path hierarchy of a task list.
type Tree struct {
	Unassigned []model.Task
	Roots      []*Node
}

// Build places every task at the node of its path, creating intermediate
// nodes for each prefix. Siblings are sorted by name using Spanish collation.
func Build(tasks []model.Task) *Tree {
	tree := &Tree{}
	for _, task := range tasks {
		if len(task.CategoryPath) == 0 {
			tree.Unassigned = append(tree.Unassigned, task)
			continue
		}

		level := &tree.Roots
		var node *Node
		for depth, name := range task.CategoryPath {
			node = child(level, name, task.CategoryPath[:depth+1])
			level = &node.Children
		}
		node.Tasks = append(node.Tasks, task)
	}

	sortNodes(tree.Roots, collate.New(language.Spanish, collate.IgnoreCase))
	return tree
}

func child(level *[]*Node, name string, path []string) *Node {
	for _, n := range *level {
		if n.Name == name {
			return n
		}
	}
	n := &Node{Name: name, Path: slices.Clone(path)}
	*level = append(*level, n)
	return n
}

func sortNodes(nodes []*Node, c *collate.Collator) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return c.CompareString(a.Name, b.Name)
	})
	for _, n := range nodes {
		sortNodes(n.Children, c)
	}
}

// Find returns the node at path, or nil.
func (t *Tree) Find(path []string) *Node {
	if len(path) == 0 {
		return nil
	}
	level := t.Roots
	var found *Node
	for _, name := range path {
		found = nil
		for _, n := range level {
			if n.Name == name {
				found = n
				break
			}
		}
		if found == nil {
			return nil
		}
		level = found.Children
	}
	return found
}

// Paths lists every node path depth-first in display order, joined with " / ".
func (t *Tree) Paths() []string {
	var paths []string
	walk(t.Roots, func(n *Node) {
		paths = append(paths, strings.Join(n.Path, " / "))
	})
	return paths
}

// Group is one displayed section of tasks.
type Group struct {
	Name  string
	Path  []string
	Tasks []model.Task
}

// Groups flattens the tree for display. The unassigned bucket always comes
// first; nodes without tasks of their own are skipped.
func (t *Tree) Groups() []Group {
	var groups []Group
	if len(t.Unassigned) > 0 {
		groups = append(groups, Group{Name: UnassignedName, Path: []string{}, Tasks: t.Unassigned})
	}
	walk(t.Roots, func(n *Node) {
		if len(n.Tasks) == 0 {
			return
		}
		groups = append(groups, Group{Name: strings.Join(n.Path, " / "), Path: n.Path, Tasks: n.Tasks})
	})
	return groups
}

// Groups is shorthand for Build(tasks).Groups().
func Groups(tasks []model.Task) []Group {
	return Build(tasks).Groups()
}

func walk(nodes []*Node, visit func(*Node)) {
	for _, n := range nodes {
		visit(n)
		walk(n.Children, visit)
	}
}
