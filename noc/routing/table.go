// Package routing computes per-router next-hop tables from the topology
// using all shortest paths.
package routing

import "sort"

// An Entry lists one candidate next hop toward a destination, together with
// every shortest path that starts with that hop. Paths appear in discovery
// order.
type Entry struct {
	NextHop int
	Paths   [][]int
}

// A Table holds, for one router, the ordered next-hop candidates for every
// destination address. Index 0 is the preferred route. Tables are built once
// and must be rebuilt wholesale after any topology mutation; a stale table
// is a caller error.
type Table struct {
	owner  int
	routes map[int][]Entry
}

func newTable(owner int) *Table {
	return &Table{
		owner:  owner,
		routes: make(map[int][]Entry),
	}
}

// Owner returns the address of the router the table belongs to.
func (t *Table) Owner() int {
	return t.owner
}

// NextHop returns the preferred next hop toward dst.
func (t *Table) NextHop(dst int) (int, bool) {
	entries := t.routes[dst]
	if len(entries) == 0 {
		return 0, false
	}

	return entries[0].NextHop, true
}

// Entries returns all next-hop candidates toward dst, preferred first.
func (t *Table) Entries(dst int) []Entry {
	return t.routes[dst]
}

// Destinations returns every reachable destination address in sorted order.
func (t *Table) Destinations() []int {
	dsts := make([]int, 0, len(t.routes))
	for dst := range t.routes {
		dsts = append(dsts, dst)
	}
	sort.Ints(dsts)

	return dsts
}

// addPath records one shortest path toward its final node. Paths sharing a
// first hop accumulate in the same entry; a new first hop opens a new entry
// behind the existing ones.
func (t *Table) addPath(path []int) {
	dst := path[len(path)-1]

	next := dst
	if len(path) > 1 {
		next = path[1]
	}

	entries := t.routes[dst]
	for i := range entries {
		if entries[i].NextHop == next {
			entries[i].Paths = append(entries[i].Paths, path)
			return
		}
	}

	t.routes[dst] = append(entries, Entry{
		NextHop: next,
		Paths:   [][]int{path},
	})
}
