package theme

import (
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope").Name; got != "flexoki-dark" {
		t.Fatalf("ByName(nope) = %q", got)
	}
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
}

func TestNextWraps(t *testing.T) {
	last := All[len(All)-1].Name
	if got := Next(last, 1); got != All[0].Name {
		t.Fatalf("Next(last, 1) = %q, want %q", got, All[0].Name)
	}
	if got := Next(All[0].Name, -1); got != last {
		t.Fatalf("Next(first, -1) = %q, want %q", got, last)
	}
	if got := Next("unknown", 1); got != All[1].Name {
		t.Fatalf("Next(unknown, 1) = %q", got)
	}
}

func TestNamesMatchesAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len = %d", len(names))
	}
	for i, n := range names {
		if Index(n) != i {
			t.Fatalf("Index(%q) = %d, want %d", n, Index(n), i)
		}
	}
}

func TestHeatDistinguishesClasses(t *testing.T) {
	th := FlexokiDark
	if th.Heat(model.Over100) != th.Red {
		t.Fatal("over goal should be red")
	}
	if th.Heat(model.NoData) == th.Heat(model.Under100) {
		t.Fatal("no data and 75-100% share a color")
	}
}
