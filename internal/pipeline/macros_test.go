package pipeline

import "testing"

func TestFromCalories(t *testing.T) {
	got := FromCalories(2000)
	if got.Protein != 150 || got.Carbs != 200 || got.Fats != 67 {
		t.Errorf("FromCalories(2000) = %+v, want 150/200/67", got)
	}
	for _, cal := range []int{0, -5} {
		if m := FromCalories(cal); m.Protein != 0 || m.Carbs != 0 || m.Fats != 0 {
			t.Errorf("FromCalories(%d) = %+v, want zero", cal, m)
		}
	}
}

func TestFromMacros(t *testing.T) {
	if got := FromMacros(50, 100, 20); got != 780 {
		t.Errorf("FromMacros(50, 100, 20) = %d, want 780", got)
	}
}

// Rounding each macro independently can drift by up to 4*0.5+4*0.5+9*0.5
// kcal from the input.
func TestMacroRoundTripDrift(t *testing.T) {
	for cal := 1; cal <= 5000; cal++ {
		m := FromCalories(cal)
		d := FromMacros(m.Protein, m.Carbs, m.Fats) - cal
		if d < -8 || d > 8 {
			t.Fatalf("cal %d: round trip drift %d", cal, d)
		}
	}
}

func TestMacrosMatch(t *testing.T) {
	if !MacrosMatch(780, 50, 100, 20) || !MacrosMatch(781, 50, 100, 20) || !MacrosMatch(779, 50, 100, 20) {
		t.Error("within 1 kcal should match")
	}
	if MacrosMatch(782, 50, 100, 20) {
		t.Error("2 kcal off should not match")
	}
}
