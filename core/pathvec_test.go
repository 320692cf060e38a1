package core

import (
	"math/rand/v2"
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asChain(t *testing.T) *state.Topology {
	return MustTopology(t, Link("as1", "as2"), Link("as2", "as3"), Link("as3", "as4"))
}

func TestPathVector_Chain(t *testing.T) {
	h := &RouterHarness{}
	pv := NewPathVector(asChain(t), state.DefaultService, h)
	require.NoError(t, pv.AnnounceSelf("as4"))
	conv := pv.Converge(0)
	require.NoError(t, conv.Err())
	assert.Equal(t, 4, conv.Rounds)

	best, err := pv.BestPath("as1")
	require.NoError(t, err)
	assert.Equal(t, state.Path{"as1", "as2", "as3", "as4"}, best)
	best, err = pv.BestPath("as2")
	require.NoError(t, err)
	assert.Equal(t, state.Path{"as2", "as3", "as4"}, best)

	tbl, err := pv.Table("as1")
	require.NoError(t, err)
	assert.Equal(t, state.PathTable{
		state.DefaultService: {
			Dest: state.DefaultService,
			Nh:   "as2",
			Path: state.Path{"as1", "as2", "as3", "as4"},
		},
	}, tbl)

	origin, err := pv.Table("as4")
	require.NoError(t, err)
	assert.Equal(t, state.NodeId("as4"), origin[state.DefaultService].Nh)

	events := h.GetEvents(LoopRejected)
	events.AssertContains(t, LoopRejected, "as", state.NodeId("as4"), "from", state.NodeId("as3"))
}

func TestPathVector_BgpSample(t *testing.T) {
	topo := MustTopology(t,
		Link("as1", "as2"),
		Link("as1", "as3"),
		Link("as2", "as3"),
		Link("as3", "as4"),
	)
	pv := NewPathVector(topo, "network_x", nil)
	require.NoError(t, pv.AnnounceSelf("as4"))
	conv := pv.Converge(0)
	require.True(t, conv.Converged)
	assert.Equal(t, 3, conv.Rounds)

	expected := map[state.NodeId]state.Path{
		"as1": {"as1", "as3", "as4"},
		"as2": {"as2", "as3", "as4"},
		"as3": {"as3", "as4"},
		"as4": {"as4"},
	}
	for id, want := range expected {
		best, err := pv.BestPath(id)
		require.NoError(t, err)
		assert.Equal(t, want, best, "speaker %s", id)
	}
	tbl, _ := pv.Table("as1")
	assert.Equal(t, state.NodeId("as3"), tbl["network_x"].Nh)
}

func TestPathVector_TieKeepsExisting(t *testing.T) {
	topo := MustTopology(t, Link("as1", "as2"), Link("as1", "as3"), Link("as2", "as4"), Link("as3", "as4"))
	pv := NewPathVector(topo, state.DefaultService, nil)
	require.NoError(t, pv.AnnounceSelf("as4"))
	require.True(t, pv.Converge(0).Converged)
	best, _ := pv.BestPath("as1")
	assert.Equal(t, state.Path{"as1", "as2", "as4"}, best)

	// an equally long alternative does not displace the adopted path
	ok, err := pv.ReceiveAnnouncement("as1", "as3", state.Path{"as3", "as4"})
	require.NoError(t, err)
	assert.False(t, ok)
	best, _ = pv.BestPath("as1")
	assert.Equal(t, state.Path{"as1", "as2", "as4"}, best)
}

func TestPathVector_LoopRejection(t *testing.T) {
	h := &RouterHarness{}
	pv := NewPathVector(asChain(t), state.DefaultService, h)
	require.NoError(t, pv.AnnounceSelf("as4"))
	require.True(t, pv.Converge(0).Converged)
	before, _ := pv.Table("as1")
	h.GetEvents()

	ok, err := pv.ReceiveAnnouncement("as1", "as2", state.Path{"as2", "as1", "as4"})
	require.NoError(t, err)
	assert.False(t, ok)
	after, _ := pv.Table("as1")
	assert.Equal(t, before, after)
	h.GetEvents().AssertContains(t, LoopRejected, "as", state.NodeId("as1"), "from", state.NodeId("as2"))

	// a loop is rejected even when it would be shorter
	fresh := NewPathVector(asChain(t), state.DefaultService, nil)
	ok, err = fresh.ReceiveAnnouncement("as1", "as2", state.Path{"as1"})
	require.NoError(t, err)
	assert.False(t, ok)
	best, _ := fresh.BestPath("as1")
	assert.Nil(t, best)
}

func TestPathVector_ShorterPathReplaces(t *testing.T) {
	h := &RouterHarness{}
	pv := NewPathVector(asChain(t), state.DefaultService, h)
	ok, err := pv.ReceiveAnnouncement("as1", "as2", state.Path{"as2", "as3", "as4"})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = pv.ReceiveAnnouncement("as1", "as2", state.Path{"as2", "as4"})
	require.NoError(t, err)
	assert.True(t, ok)

	best, _ := pv.BestPath("as1")
	assert.Equal(t, state.Path{"as1", "as2", "as4"}, best)
	events := h.GetEvents()
	events.AssertContains(t, RouteAdded, "as", state.NodeId("as1"))
	events.AssertContains(t, RouteImproved, "as", state.NodeId("as1"))
}

func TestPathVector_Idempotent(t *testing.T) {
	pv := NewPathVector(asChain(t), state.DefaultService, nil)
	require.NoError(t, pv.AnnounceSelf("as4"))
	require.True(t, pv.Converge(0).Converged)
	assert.Equal(t, 0, pv.Round())
	best, _ := pv.BestPath("as1")
	assert.Equal(t, state.Path{"as1", "as2", "as3", "as4"}, best)
}

func TestPathVector_NoOrigin(t *testing.T) {
	pv := NewPathVector(asChain(t), state.DefaultService, nil)
	conv := pv.Converge(0)
	assert.True(t, conv.Converged)
	assert.Equal(t, 1, conv.Rounds)
	for _, id := range pv.Speakers() {
		best, err := pv.BestPath(id)
		require.NoError(t, err)
		assert.Nil(t, best)
		tbl, _ := pv.Table(id)
		assert.Empty(t, tbl)
	}
}

func TestPathVector_MultipleOrigins(t *testing.T) {
	pv := NewPathVector(asChain(t), state.DefaultService, nil)
	require.NoError(t, pv.AnnounceSelf("as1"))
	require.NoError(t, pv.AnnounceSelf("as4"))
	require.True(t, pv.Converge(0).Converged)

	best, _ := pv.BestPath("as2")
	assert.Equal(t, state.Path{"as2", "as1"}, best)
	best, _ = pv.BestPath("as3")
	assert.Equal(t, state.Path{"as3", "as4"}, best)
}

func TestPathVector_UnknownNode(t *testing.T) {
	pv := NewPathVector(asChain(t), state.DefaultService, nil)
	assert.ErrorIs(t, pv.AnnounceSelf("as9"), state.ErrUnknownNode)
	_, err := pv.ReceiveAnnouncement("as9", "as1", state.Path{"as1"})
	assert.ErrorIs(t, err, state.ErrUnknownNode)
	_, err = pv.ReceiveAnnouncement("as1", "as9", state.Path{"as9"})
	assert.ErrorIs(t, err, state.ErrUnknownNode)
	_, err = pv.BestPath("as9")
	assert.ErrorIs(t, err, state.ErrUnknownNode)
}

func TestPathVector_PathsAreLoopFreeAndShortest(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for iter := 0; iter < 50; iter++ {
		topo := randomTopology(t, r, 1+r.IntN(8))
		nodes := topo.Nodes()
		origin := nodes[r.IntN(len(nodes))]

		pv := NewPathVector(topo, state.DefaultService, nil)
		require.NoError(t, pv.AnnounceSelf(origin))
		require.True(t, pv.Converge(0).Converged)

		hops := hopCounts(topo, origin)
		for _, id := range nodes {
			best, err := pv.BestPath(id)
			require.NoError(t, err)
			h, reachable := hops[id]
			if !reachable {
				assert.Nil(t, best)
				continue
			}
			require.Len(t, best, int(h)+1)
			assert.Equal(t, id, best[0])
			assert.Equal(t, origin, best[len(best)-1])

			seen := make(map[state.NodeId]bool)
			for i, as := range best {
				require.False(t, seen[as], "%s appears twice in %s", as, best)
				seen[as] = true
				if i > 0 {
					_, adjacent := topo.Cost(best[i-1], as)
					require.True(t, adjacent)
				}
			}
		}
	}
}
