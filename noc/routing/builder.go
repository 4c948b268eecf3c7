package routing

import (
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/sarchlab/noctlm/noc"
)

// BuildTable computes the routing table of one router. For every other
// router it enumerates all shortest paths by hop count and groups them by
// first hop. Path enumeration follows ascending neighbor addresses, so the
// discovery order, and with it the preferred route, is deterministic. The
// synthetic self-route {own address -> own address} is always present.
func BuildTable(n *noc.Network, src noc.RouterID) *Table {
	g := n.Graph()
	own := n.Router(src).Address

	t := newTable(own)
	t.addPath([]int{own})

	distFromSrc := hopDistances(g, own)

	for _, dest := range sortedAddresses(n) {
		if dest == own {
			continue
		}

		if _, reachable := distFromSrc[dest]; !reachable {
			continue
		}

		distToDest := hopDistances(g, dest)
		for _, path := range shortestPaths(g, own, dest,
			distFromSrc, distToDest) {
			t.addPath(path)
		}
	}

	return t
}

// BuildAllTables computes the routing table of every router in the network.
func BuildAllTables(n *noc.Network) map[noc.RouterID]*Table {
	tables := make(map[noc.RouterID]*Table, len(n.Routers()))
	for _, r := range n.Routers() {
		tables[r.ID] = BuildTable(n, r.ID)
	}

	return tables
}

// hopDistances runs a breadth-first search over the router graph and
// returns the hop count from the given address to every reachable address.
func hopDistances(g graph.Undirected, from int) map[int]int {
	dist := map[int]int{from: 0}
	frontier := []int{from}

	for len(frontier) > 0 {
		var next []int

		for _, cur := range frontier {
			for _, nb := range sortedNeighbors(g, cur) {
				if _, seen := dist[nb]; seen {
					continue
				}

				dist[nb] = dist[cur] + 1
				next = append(next, nb)
			}
		}

		frontier = next
	}

	return dist
}

// shortestPaths enumerates every shortest path from src to dest in
// lexicographic address order. A node lies on a shortest path exactly when
// its distances to both ends add up to the total distance.
func shortestPaths(
	g graph.Undirected,
	src, dest int,
	distFromSrc, distToDest map[int]int,
) [][]int {
	total := distFromSrc[dest]

	var paths [][]int
	var walk func(cur int, path []int)

	walk = func(cur int, path []int) {
		if cur == dest {
			paths = append(paths, append([]int(nil), path...))
			return
		}

		for _, nb := range sortedNeighbors(g, cur) {
			if distFromSrc[nb] != distFromSrc[cur]+1 {
				continue
			}

			if distFromSrc[nb]+distToDest[nb] != total {
				continue
			}

			walk(nb, append(path, nb))
		}
	}

	walk(src, []int{src})

	return paths
}

func sortedNeighbors(g graph.Undirected, addr int) []int {
	var neighbors []int

	it := g.From(int64(addr))
	for it.Next() {
		neighbors = append(neighbors, int(it.Node().ID()))
	}
	sort.Ints(neighbors)

	return neighbors
}

func sortedAddresses(n *noc.Network) []int {
	addrs := make([]int, 0, len(n.Routers()))
	for _, r := range n.Routers() {
		addrs = append(addrs, r.Address)
	}
	sort.Ints(addrs)

	return addrs
}
