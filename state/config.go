package state

import (
	"fmt"
	"maps"
	"net/netip"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// SimCfg describes the network to simulate
type SimCfg struct {
	Nodes     []NodeId                  `yaml:",omitempty"`           // declared nodes, required when Graph is used
	Links     []string                  `yaml:",omitempty"`           // weighted links, "a, b, cost"
	Graph     []string                  `yaml:",omitempty"`           // unweighted peerings, see ParseGraph
	Origins   []NodeId                  `yaml:",omitempty"`           // path-vector origins announcing Service
	Service   ServiceId                 `yaml:",omitempty"`           // destination announced by the origins
	MaxRounds int                       `yaml:"max_rounds,omitempty"` // round ceiling, 0 uses the number of nodes
	Prefixes  map[NodeId][]netip.Prefix `yaml:",omitempty"`           // addresses owned by each node, used for forwarding lookups
	LogPath   string                    `yaml:"log_path,omitempty"`   // if not empty, logs are also written to this file
}

// ParseLinks parses "a, b, cost" lines into weighted links. The cost may be omitted, in which case it is one hop.
func ParseLinks(links []string) ([]Triple[NodeId, NodeId, int], error) {
	out := make([]Triple[NodeId, NodeId, int], 0, len(links))
	for _, line := range links {
		spl := strings.Split(strings.ToLower(strings.TrimSpace(line)), ",")
		if len(spl) != 2 && len(spl) != 3 {
			return nil, fmt.Errorf("invalid link: %q, expected \"node, node[, cost]\"", line)
		}
		a := NodeId(strings.TrimSpace(spl[0]))
		b := NodeId(strings.TrimSpace(spl[1]))
		if a == "" || b == "" {
			return nil, fmt.Errorf("invalid link: %q, node name must not be empty", line)
		}
		cost := int(HopCost)
		if len(spl) == 3 {
			c, err := strconv.Atoi(strings.TrimSpace(spl[2]))
			if err != nil {
				return nil, fmt.Errorf("invalid link cost in %q: %w", line, err)
			}
			cost = c
		}
		out = append(out, Triple[NodeId, NodeId, int]{a, b, cost})
	}
	return out, nil
}

// GetNodes returns the declared nodes together with every link endpoint, sorted
func (c *SimCfg) GetNodes() []NodeId {
	set := make(map[NodeId]struct{})
	for _, n := range c.Nodes {
		set[NodeId(strings.ToLower(string(n)))] = struct{}{}
	}
	if links, err := ParseLinks(c.Links); err == nil {
		for _, l := range links {
			set[l.V1] = struct{}{}
			set[l.V2] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func (c *SimCfg) GetService() ServiceId {
	if c.Service == "" {
		return DefaultService
	}
	return c.Service
}

// LinkTopology builds the weighted topology used by the link-state and distance-vector engines.
// Without links, the peering graph is used with unit costs.
func (c *SimCfg) LinkTopology() (*Topology, error) {
	if len(c.Links) == 0 && len(c.Graph) != 0 {
		return c.PeeringTopology()
	}
	links, err := ParseLinks(c.Links)
	if err != nil {
		return nil, err
	}
	t, err := FromEdges(links)
	if err != nil {
		return nil, err
	}
	for _, n := range c.GetNodes() {
		t.AddNode(n)
	}
	return t, nil
}

// PeeringTopology builds the unweighted topology used by the path-vector engine.
// Without a peering graph, the links are used and their costs ignored.
func (c *SimCfg) PeeringTopology() (*Topology, error) {
	nodes := c.GetNodes()
	var pairs []Pair[NodeId, NodeId]
	if len(c.Graph) != 0 {
		var err error
		pairs, err = ParseGraph(c.Graph, nodes)
		if err != nil {
			return nil, err
		}
	} else {
		links, err := ParseLinks(c.Links)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			pairs = append(pairs, Pair[NodeId, NodeId]{l.V1, l.V2})
		}
	}
	t, err := FromPairs(pairs)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		t.AddNode(n)
	}
	return t, nil
}

// Normalize lowercases every node id and the service name, the same way links and the peering
// graph are parsed. Slices and maps are replaced rather than modified in place.
func (c *SimCfg) Normalize() {
	c.Nodes = lowerIds(c.Nodes)
	c.Origins = lowerIds(c.Origins)
	c.Service = ServiceId(strings.ToLower(strings.TrimSpace(string(c.Service))))
	if c.Prefixes != nil {
		prefixes := make(map[NodeId][]netip.Prefix, len(c.Prefixes))
		for _, id := range slices.Sorted(maps.Keys(c.Prefixes)) {
			key := lowerId(id)
			prefixes[key] = append(prefixes[key], c.Prefixes[id]...)
		}
		c.Prefixes = prefixes
	}
}

func lowerId(id NodeId) NodeId {
	return NodeId(strings.ToLower(strings.TrimSpace(string(id))))
}

func lowerIds(ids []NodeId) []NodeId {
	if ids == nil {
		return nil
	}
	out := make([]NodeId, len(ids))
	for i, id := range ids {
		out[i] = lowerId(id)
	}
	return out
}

// ReadConfig loads and normalizes a config file
func ReadConfig(path string) (*SimCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SimCfg
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

func WriteConfig(path string, cfg *SimCfg) error {
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0600)
}
