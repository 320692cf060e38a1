package core

import (
	"net/netip"

	"github.com/encodeous/routesim/state"
	"github.com/gaissmai/bart"
)

type FibEntry struct {
	Prefix netip.Prefix
	Dest   state.NodeId
	Nh     state.NodeId
	Metric uint32
}

// Fib is the forwarding table of a single router: every prefix owned by a reachable
// destination is installed towards the next hop of that destination.
type Fib struct {
	Id    state.NodeId
	table bart.Table[FibEntry]
	size  int
}

// BuildFib installs the prefixes of every destination in rt. If two destinations own the same
// prefix, the one with the lower metric is kept, then the lower node id.
func BuildFib(id state.NodeId, rt state.Table, prefixes map[state.NodeId][]netip.Prefix) *Fib {
	f := &Fib{Id: id}
	for _, dest := range rt.Destinations() {
		route := rt[dest]
		for _, p := range prefixes[dest] {
			p = p.Masked()
			if cur, ok := f.table.Get(p); ok && cur.Metric <= route.Metric {
				continue
			} else if !ok {
				f.size++
			}
			f.table.Insert(p, FibEntry{
				Prefix: p,
				Dest:   dest,
				Nh:     route.Nh,
				Metric: route.Metric,
			})
		}
	}
	return f
}

// Lookup returns the entry of the longest prefix containing addr
func (f *Fib) Lookup(addr netip.Addr) (FibEntry, bool) {
	return f.table.Lookup(addr.Unmap())
}

// Len returns the number of installed prefixes
func (f *Fib) Len() int {
	return f.size
}
