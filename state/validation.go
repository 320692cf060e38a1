package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func ConfigValidator(cfg *SimCfg) error {
	nodes := cfg.GetNodes()
	for _, node := range nodes {
		err := NameValidator(string(node))
		if err != nil {
			return err
		}
	}
	if cfg.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative, got %d", cfg.MaxRounds)
	}
	if cfg.Service != "" {
		if err := NameValidator(string(cfg.Service)); err != nil {
			return err
		}
	}

	links, err := ParseLinks(cfg.Links)
	if err != nil {
		return err
	}
	seen := make(map[Pair[NodeId, NodeId]]int)
	for _, link := range links {
		if link.V3 < 0 {
			return &NegativeCostError{From: link.V1, To: link.V2, Cost: link.V3}
		}
		if link.V1 == link.V2 {
			return fmt.Errorf("%w on node %s", ErrSelfLoop, link.V1)
		}
		if len(cfg.Nodes) != 0 {
			for _, n := range []NodeId{link.V1, link.V2} {
				if !slices.Contains(cfg.Nodes, n) {
					return &UnknownNodeError{Node: n}
				}
			}
		}
		key := MakeSortedPair(link.V1, link.V2)
		if cost, ok := seen[key]; ok && cost != link.V3 {
			return fmt.Errorf("conflicting costs for link %s, %s: %d and %d", key.V1, key.V2, cost, link.V3)
		}
		seen[key] = link.V3
	}

	peering, err := cfg.PeeringTopology()
	if err != nil {
		return err
	}
	for _, origin := range cfg.Origins {
		if !peering.HasNode(origin) {
			return &UnknownNodeError{Node: origin}
		}
	}
	for node, prefixes := range cfg.Prefixes {
		if !slices.Contains(nodes, node) {
			return &UnknownNodeError{Node: node}
		}
		for _, p := range prefixes {
			if !p.IsValid() {
				return fmt.Errorf("node %s has an invalid prefix", node)
			}
		}
	}
	return nil
}
