package coa

import "sort"

// Node is an account with its direct descendants resolved. Children hold the
// same shape recursively and are sorted by account code.
type Node struct {
	Account
	Children []*Node `json:"children"`
}

// Row is one line of the indented tabular rendering of the tree: the account
// plus its depth (roots at depth 0) for per-level indentation.
type Row struct {
	Account Account `json:"account"`
	Depth   int     `json:"depth"`
}

// BuildTree turns a flat account list into a rooted forest. Each parent id
// maps to its children list, children and roots are ordered by account_code
// ascending. An account whose parent id does not exist in the input is
// dropped from the result; the caller decides whether that is worth logging.
// The function is pure: calling it twice on the same input yields
// structurally identical forests, and no account appears twice.
func BuildTree(accounts []Account) []*Node {
	nodes := make(map[int64]*Node, len(accounts))
	for _, a := range accounts {
		nodes[a.ID] = &Node{Account: a}
	}

	var roots []*Node
	for _, a := range accounts {
		node := nodes[a.ID]
		if a.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*a.ParentID]
		if !ok {
			// Orphan: declared parent is not in the input set.
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}

	return roots
}

// Orphans returns the accounts whose declared parent id is missing from the
// input set, i.e. the rows BuildTree silently drops.
func Orphans(accounts []Account) []Account {
	present := make(map[int64]bool, len(accounts))
	for _, a := range accounts {
		present[a.ID] = true
	}

	var orphans []Account
	for _, a := range accounts {
		if !a.IsRoot() && !present[*a.ParentID] {
			orphans = append(orphans, a)
		}
	}
	return orphans
}

// Flatten returns the pre-order traversal of the forest (each root followed
// by its descendants before the next root), tagging every row with its depth.
func Flatten(roots []*Node) []Row {
	var rows []Row
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		rows = append(rows, Row{Account: n.Account, Depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return rows
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].AccountCode < nodes[j].AccountCode
	})
}
