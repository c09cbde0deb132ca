package shape

import (
	"slices"
	"testing"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

func sampleTree() []Node {
	return []Node{
		&Leaf{ID: "a", Filled: true, Fill: color.RGB{R: 1}},
		&Group{ID: "g1", Children: []Node{
			&Leaf{ID: "b", Filled: true, Fill: color.RGB{R: 2}},
			&CompoundPath{ID: "cp", Children: []Node{
				&Leaf{ID: "c", Filled: false},
				&Leaf{ID: "d", Filled: true, Fill: color.RGB{R: 3}},
			}},
		}},
		&Leaf{ID: "e", Filled: true, Fill: color.RGB{R: 4}},
	}
}

func TestWalkPreOrder(t *testing.T) {
	var ids []string
	Walk(sampleTree(), func(l *Leaf) bool {
		ids = append(ids, l.ID)
		return true
	})

	want := []string{"a", "b", "c", "d", "e"}
	if !slices.Equal(ids, want) {
		t.Errorf("Walk() visited %v, want %v", ids, want)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	var ids []string
	Walk(sampleTree(), func(l *Leaf) bool {
		ids = append(ids, l.ID)
		return l.ID != "c"
	})

	want := []string{"a", "b", "c"}
	if !slices.Equal(ids, want) {
		t.Errorf("Walk() visited %v, want %v", ids, want)
	}
}

func TestCount(t *testing.T) {
	if got := Count(sampleTree()); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if got := Count(nil); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestFind(t *testing.T) {
	tree := sampleTree()

	if n := Find(tree, "cp"); n == nil {
		t.Fatal("Find(cp) returned nil")
	} else if _, ok := n.(*CompoundPath); !ok {
		t.Errorf("Find(cp) = %T, want *CompoundPath", n)
	}

	if n := Find(tree, "d"); n == nil || n.NodeID() != "d" {
		t.Errorf("Find(d) = %v", n)
	}

	if n := Find(tree, "missing"); n != nil {
		t.Errorf("Find(missing) = %v, want nil", n)
	}
}
