package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

func parseSymbolList(s string, valid func(string) bool) ([]string, error) {
	line := make([]string, 0)
	for _, sym := range strings.Split(strings.TrimSpace(s), ",") {
		x := strings.TrimSpace(sym)
		if x == "" {
			continue
		}
		if !valid(x) {
			return nil, fmt.Errorf(`%s is not a valid node/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`node/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

/*
ParseGraph expands the peering syntax into a sorted list of unique links:

	core = as1, as2, as3
	edge = as4, as5
	stub = edge, as6

	core, core // every AS in core peers with every other AS in core
	core, stub // every AS in core peers with every AS in stub, but not within stub
	as3, as7   // a single peering

Groups may reference other groups, but not themselves. Names are case-insensitive.
*/
func ParseGraph(graph []string, nodes []NodeId) ([]Pair[NodeId, NodeId], error) {
	isNode := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		isNode[strings.ToLower(string(n))] = true
	}

	groups := make(map[string][]string)
	pairings := make([][]string, 0)

	// pass 0, collect group names so they can be referenced before their definition
	declared := make(map[string]bool)
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if !strings.Contains(line, "=") {
			continue
		}
		spl := strings.Split(line, "=")
		if len(spl) != 2 {
			return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
		}
		grp := strings.TrimSpace(spl[0])
		if isNode[grp] {
			return nil, fmt.Errorf("group name must not be a node name: %s", grp)
		}
		if declared[grp] {
			return nil, fmt.Errorf("duplicate group name: %s", grp)
		}
		declared[grp] = true
	}
	valid := func(s string) bool {
		return isNode[s] || declared[s]
	}

	// pass 1, parse definitions and pairings
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			lst, err := parseSymbolList(spl[1], valid)
			if err != nil {
				return nil, err
			}
			groups[strings.TrimSpace(spl[0])] = lst
		} else {
			names, err := parseSymbolList(line, valid)
			if err != nil {
				return nil, err
			}
			if len(names) < 2 {
				return nil, fmt.Errorf("invalid pairing, %v", names)
			}
			pairings = append(pairings, names)
		}
	}

	// pass 2, expand groups down to terminal nodes
	expansion := make(map[string][]NodeId)
	var expand func(sym string, visiting map[string]bool) ([]NodeId, error)
	expand = func(sym string, visiting map[string]bool) ([]NodeId, error) {
		if isNode[sym] {
			return []NodeId{NodeId(sym)}, nil
		}
		if exp, ok := expansion[sym]; ok {
			return exp, nil
		}
		if visiting[sym] {
			cycle := slices.Sorted(maps.Keys(visiting))
			return nil, fmt.Errorf("cycle detected in graph: %v", cycle)
		}
		visiting[sym] = true
		out := make([]NodeId, 0)
		for _, member := range groups[sym] {
			exp, err := expand(member, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, exp...)
		}
		delete(visiting, sym)
		slices.Sort(out)
		out = slices.Compact(out)
		expansion[sym] = out
		return out, nil
	}
	for _, grp := range slices.Sorted(maps.Keys(groups)) {
		if _, err := expand(grp, make(map[string]bool)); err != nil {
			return nil, err
		}
	}

	// pass 3, interconnect every pair of symbols on each pairing line
	links := make([]Pair[NodeId, NodeId], 0)
	for _, names := range pairings {
		for i := range names {
			for j := i + 1; j < len(names); j++ {
				xs, _ := expand(names[i], make(map[string]bool))
				ys, _ := expand(names[j], make(map[string]bool))
				for _, x := range xs {
					for _, y := range ys {
						if x != y {
							links = append(links, MakeSortedPair(x, y))
						}
					}
				}
			}
		}
	}
	SortPairs(links)
	return slices.Compact(links), nil
}
