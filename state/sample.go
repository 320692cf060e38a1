package state

import "net/netip"

// SampleCfg returns the demonstration router network of the OSPF and RIP examples.
// Path-vector runs over the same links with d originating the service.
func SampleCfg() SimCfg {
	return SimCfg{
		Nodes: []NodeId{"a", "b", "c", "d"},
		Links: []string{
			"a, b, 1",
			"a, c, 5",
			"b, c, 2",
			"b, d, 1",
			"c, d, 4",
		},
		Origins: []NodeId{"d"},
		Prefixes: map[NodeId][]netip.Prefix{
			"a": {netip.MustParsePrefix("10.0.0.1/32")},
			"b": {netip.MustParsePrefix("10.0.0.2/32")},
			"c": {netip.MustParsePrefix("10.0.0.3/32"), netip.MustParsePrefix("10.3.0.0/16")},
			"d": {netip.MustParsePrefix("10.0.0.4/32"), netip.MustParsePrefix("10.0.0.0/8")},
		},
	}
}

// SampleASCfg returns the path-vector demonstration network, where as4 originates the service
func SampleASCfg() SimCfg {
	return SimCfg{
		Nodes: []NodeId{"as1", "as2", "as3", "as4"},
		Graph: []string{
			"transit = as1, as2, as3",
			"transit, transit",
			"as3, as4",
		},
		Origins: []NodeId{"as4"},
		Service: DefaultService,
	}
}

// SampleISISCfg returns the weighted IS-IS demonstration network
func SampleISISCfg() SimCfg {
	return SimCfg{
		Nodes: []NodeId{"r1", "r2", "r3", "r4"},
		Links: []string{
			"r1, r2, 10",
			"r1, r3, 5",
			"r2, r4, 2",
			"r3, r4, 1",
		},
		Origins: []NodeId{"r4"},
	}
}
