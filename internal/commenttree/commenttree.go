// Package commenttree holds the pure tree algorithms over the parent-pointer
// comment forest of a post.
package commenttree

import "github.com/emilythestrangee/investor-hub/backend/internal/models"

// Edge is one parent pointer. ParentID is nil for root comments.
type Edge struct {
	ID       int
	ParentID *int
}

// Subtree returns rootID followed by every transitive descendant found in
// edges, in breadth-first order. It walks an explicit worklist, so thread
// depth never grows the call stack, and each node is visited once even if
// edges contain a cycle.
func Subtree(rootID int, edges []Edge) []int {
	return walk([]int{rootID}, childIndex(edges))
}

// Covered returns the set of roots and all of their transitive descendants.
// The listing uses it to hide every comment beneath a deleted one.
func Covered(roots []int, edges []Edge) map[int]struct{} {
	ids := walk(roots, childIndex(edges))
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func childIndex(edges []Edge) map[int][]int {
	children := make(map[int][]int, len(edges))
	for _, e := range edges {
		if e.ParentID == nil {
			continue
		}
		children[*e.ParentID] = append(children[*e.ParentID], e.ID)
	}
	return children
}

func walk(roots []int, children map[int][]int) []int {
	seen := make(map[int]struct{}, len(roots))
	out := make([]int, 0, len(roots))
	for _, r := range roots {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	for i := 0; i < len(out); i++ {
		for _, child := range children[out[i]] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
		}
	}
	return out
}

// Node is a comment with its direct replies attached.
type Node struct {
	Comment *models.Comment
	Replies []*Node
}

// Nest rebuilds the forest from a flat list, keeping the input order among
// siblings. A comment whose parent is not in the list becomes a root.
func Nest(comments []*models.Comment) []*Node {
	nodes := make(map[int]*Node, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &Node{Comment: c}
	}

	roots := make([]*Node, 0)
	for _, c := range comments {
		n := nodes[c.ID]
		if c.ParentCommentID != nil {
			if parent, ok := nodes[*c.ParentCommentID]; ok && parent != n {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
