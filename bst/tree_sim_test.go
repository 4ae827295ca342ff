package bst

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/btree"
	"pgregory.net/rapid"

	"github.com/cosmos/csz-bench/csz"
)

func TestTreeSims(t *testing.T) {
	rapid.Check(t, testTreeSims)
}

func FuzzTree(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testTreeSims))
}

func testTreeSims(t *rapid.T) {
	sim := &SimMachine{
		iterTree:  &Tree{},
		recTree:   &Tree{},
		mixedTree: &Tree{},
		model:     newModel(),
	}
	t.Repeat(map[string]func(*rapid.T){
		"":        sim.Check,
		"InsertN": sim.InsertN,
		"Iterate": sim.Iterate,
		"Erase":   sim.Erase,
	})
}

type modelEntry struct {
	rec csz.Record
	seq int
}

// SimMachine feeds the same records to three trees, one per insert method plus one
// alternating between them, and checks them against a model ordered by (city, seq).
type SimMachine struct {
	iterTree  *Tree
	recTree   *Tree
	mixedTree *Tree
	model     *btree.BTreeG[modelEntry]
	seq       int
	// cities is a pool of previously drawn cities so duplicates come up often
	cities []string
}

func newModel() *btree.BTreeG[modelEntry] {
	return btree.NewBTreeG(func(a, b modelEntry) bool {
		if a.rec.City != b.rec.City {
			return a.rec.City < b.rec.City
		}
		return a.seq < b.seq
	})
}

func (s *SimMachine) Check(t *rapid.T) {
	var expected []csz.Record
	s.model.Scan(func(e modelEntry) bool {
		expected = append(expected, e.rec)
		return true
	})

	for _, tree := range []*Tree{s.iterTree, s.recTree, s.mixedTree} {
		var iterative, recursive []csz.Record
		tree.WalkIterative(func(rec csz.Record) { iterative = append(iterative, rec) })
		tree.WalkRecursive(func(rec csz.Record) { recursive = append(recursive, rec) })
		require.Equal(t, expected, iterative, "iterative walk does not match model")
		require.Equal(t, expected, recursive, "recursive walk does not match model")
		require.Equal(t, s.model.Len(), tree.Len())
	}
	requireSameShape(t, s.iterTree.root, s.recTree.root)
	requireSameShape(t, s.iterTree.root, s.mixedTree.root)
}

func (s *SimMachine) InsertN(t *rapid.T) {
	n := rapid.IntRange(1, 100).Draw(t, "n")
	for i := 0; i < n; i++ {
		rec := csz.New(
			s.selectCity(t),
			rapid.StringMatching(`[A-Z]{2}`).Draw(t, "state"),
			rapid.Uint32Range(0, 99999).Draw(t, "zip"),
		)
		require.NoError(t, s.iterTree.InsertIterative(rec))
		require.NoError(t, s.recTree.InsertRecursive(rec))
		if s.seq%2 == 0 {
			require.NoError(t, s.mixedTree.InsertIterative(rec))
		} else {
			require.NoError(t, s.mixedTree.InsertRecursive(rec))
		}
		s.model.Set(modelEntry{rec: rec, seq: s.seq})
		s.seq++
	}
}

func (s *SimMachine) selectCity(t *rapid.T) string {
	if len(s.cities) > 0 && rapid.Bool().Draw(t, "existingCity") {
		return rapid.SampledFrom(s.cities).Draw(t, "city")
	}
	city := rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, "city")
	s.cities = append(s.cities, city)
	return city
}

func (s *SimMachine) Iterate(t *rapid.T) {
	limit := rapid.IntRange(0, s.model.Len()).Draw(t, "limit")
	var got []csz.Record
	for rec := range s.iterTree.All() {
		if len(got) == limit {
			break
		}
		got = append(got, rec)
	}
	var expected []csz.Record
	for _, e := range s.model.Items()[:limit] {
		expected = append(expected, e.rec)
	}
	require.Equal(t, expected, got)
	require.True(t, slices.IsSortedFunc(got, func(a, b csz.Record) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	}))
}

func (s *SimMachine) Erase(t *rapid.T) {
	s.iterTree.EraseAll()
	s.recTree.EraseAll()
	s.mixedTree.EraseAll()
	if rapid.Bool().Draw(t, "eraseTwice") {
		s.iterTree.EraseAll()
	}
	s.model.Clear()
	for _, tree := range []*Tree{s.iterTree, s.recTree, s.mixedTree} {
		require.Equal(t, 0, tree.Len())
		require.Equal(t, 0, tree.Height())
	}
}
