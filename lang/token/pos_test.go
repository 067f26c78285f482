package token

import "testing"

func TestPositionLess(t *testing.T) {
	cases := []struct {
		a, b Position
		want bool
	}{
		{Position{1, 1}, Position{1, 2}, true},
		{Position{1, 2}, Position{1, 1}, false},
		{Position{1, 5}, Position{2, 1}, true},
		{Position{2, 1}, Position{1, 5}, false},
		{Position{3, 4}, Position{3, 4}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%v.Less(%v) = %t, want %t", c.a, c.b, got, c.want)
		}
	}
}

func TestPositionValid(t *testing.T) {
	if (Position{}).Valid() {
		t.Error("zero Position should be invalid")
	}
	if !(Position{Line: 1, Col: 1}).Valid() {
		t.Error("(1,1) should be valid")
	}
}

func TestMergeOrdered(t *testing.T) {
	ranges := []Range{
		{Position{1, 1}, Position{1, 4}},
		{Position{1, 5}, Position{1, 8}},
		{Position{2, 1}, Position{2, 3}},
	}
	got := Merge(ranges, true)
	want := Range{Position{1, 1}, Position{2, 3}}
	if got != want {
		t.Errorf("Merge(ordered) = %+v, want %+v", got, want)
	}
}

func TestMergeUnordered(t *testing.T) {
	ranges := []Range{
		{Position{3, 1}, Position{3, 5}},
		{Position{1, 1}, Position{1, 2}},
		{Position{2, 1}, Position{5, 1}},
	}
	got := Merge(ranges, false)
	want := Range{Position{1, 1}, Position{5, 1}}
	if got != want {
		t.Errorf("Merge(unordered) = %+v, want %+v", got, want)
	}
}

func TestMergeSingle(t *testing.T) {
	r := Range{Position{1, 1}, Position{1, 2}}
	if got := Merge([]Range{r}, true); got != r {
		t.Errorf("Merge single = %+v, want %+v", got, r)
	}
	if got := Merge([]Range{r}, false); got != r {
		t.Errorf("Merge single = %+v, want %+v", got, r)
	}
}
