// Package cluster groups duplicate-classified item pairs into maximal
// clusters using a disjoint-set structure.
package cluster

// unionFind is a disjoint-set over item ids with path compression and
// union by rank. One instance is scoped to a single analysis run and
// discarded with it; no state survives across runs.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

// newUnionFind initializes every id as its own singleton root.
func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

// find returns the root representative for id, compressing the path as
// it walks. Unknown ids are treated as their own root.
func (uf *unionFind) find(id string) string {
	root, ok := uf.parent[id]
	if !ok {
		uf.parent[id] = id
		return id
	}
	if root != id {
		root = uf.find(root)
		uf.parent[id] = root
	}
	return root
}

// union merges the sets containing a and b, attaching the shallower tree
// under the deeper one.
func (uf *unionFind) union(a, b string) {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA == rootB {
		return
	}

	switch {
	case uf.rank[rootA] < uf.rank[rootB]:
		uf.parent[rootA] = rootB
	case uf.rank[rootA] > uf.rank[rootB]:
		uf.parent[rootB] = rootA
	default:
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
}
