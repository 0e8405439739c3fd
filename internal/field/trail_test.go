package field

import "testing"

func TestTrailEvictsOldestFirst(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Push(Vec{X: float64(i)})
		if tr.Len() > tr.Cap() {
			t.Fatalf("Len() = %d exceeds Cap() = %d", tr.Len(), tr.Cap())
		}
	}

	want := []float64{2, 3, 4}
	if tr.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(want))
	}
	for i, x := range want {
		if got := tr.At(i).X; got != x {
			t.Errorf("At(%d).X = %v, want %v", i, got, x)
		}
	}

	var seen []float64
	tr.Each(func(v Vec) { seen = append(seen, v.X) })
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", seen, want)
		}
	}
}

func TestTrailPartiallyFilled(t *testing.T) {
	tr := NewTrail(4)
	tr.Push(Vec{X: 1})
	tr.Push(Vec{X: 2})
	if tr.Len() != 2 || tr.At(0).X != 1 || tr.At(1).X != 2 {
		t.Fatalf("unexpected trail contents after two pushes")
	}

	tr.Reset()
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", tr.Len())
	}
	tr.Push(Vec{X: 9})
	if tr.At(0).X != 9 {
		t.Fatalf("At(0).X = %v after Reset and push, want 9", tr.At(0).X)
	}
}

func TestTrailZeroCapacity(t *testing.T) {
	tr := NewTrail(0)
	tr.Push(Vec{X: 1})
	if tr.Len() != 0 {
		t.Fatalf("zero-capacity trail stored %d samples", tr.Len())
	}
	neg := NewTrail(-3)
	if neg.Cap() != 0 {
		t.Fatalf("negative capacity gave Cap() = %d", neg.Cap())
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		Ambient:       "ambient",
		Burst:         "burst",
		Feature:       "feature",
		TrailFollower: "trail",
		Kind(42):      "unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
