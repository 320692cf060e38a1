package state

import (
	"reflect"
	"testing"
)

func TestSortPairsInt(t *testing.T) {
	pairs := []Pair[int, int]{
		{V1: 3, V2: 10},
		{V1: 1, V2: 20},
		{V1: 1, V2: 5},
		{V1: 2, V2: 15},
	}
	expected := []Pair[int, int]{
		{V1: 1, V2: 5},
		{V1: 1, V2: 20},
		{V1: 2, V2: 15},
		{V1: 3, V2: 10},
	}
	SortPairs(pairs)
	if !reflect.DeepEqual(pairs, expected) {
		t.Fatalf("expected %v, got %v", expected, pairs)
	}
}

func TestSortPairsString(t *testing.T) {
	pairs := []Pair[NodeId, NodeId]{
		{V1: "b", V2: "y"},
		{V1: "a", V2: "z"},
		{V1: "a", V2: "x"},
		{V1: "c", V2: "w"},
	}
	expected := []Pair[NodeId, NodeId]{
		{V1: "a", V2: "x"},
		{V1: "a", V2: "z"},
		{V1: "b", V2: "y"},
		{V1: "c", V2: "w"},
	}
	SortPairs(pairs)
	if !reflect.DeepEqual(pairs, expected) {
		t.Fatalf("expected %v, got %v", expected, pairs)
	}
}

func TestMakeSortedPair(t *testing.T) {
	if p := MakeSortedPair[NodeId]("b", "a"); p.V1 != "a" || p.V2 != "b" {
		t.Fatalf("expected (a, b), got %v", p)
	}
	if p := MakeSortedPair(1, 2); p.V1 != 1 || p.V2 != 2 {
		t.Fatalf("expected (1, 2), got %v", p)
	}
}
