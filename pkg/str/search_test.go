package str

import "testing"

func TestIndexOf(t *testing.T) {
	abcdef, abc, bc := New("abcdef"), New("abc"), New("bc")
	cases := []struct {
		haystack, needle *String
		from             int
		want             int
	}{
		{bc, New("a"), 0, -1},
		{abc, bc, 0, 1},
		{abcdef, New("ab"), 0, 0},
		{abcdef, New("def"), 0, 3},
		{abcdef, New("xyz"), 0, -1},
		{abcdef, New("abcdefg"), 0, -1},
		{abcdef, New("f"), 5, 5},
		{abcdef, New("ab"), 1, -1},
		{New("aab"), New("ab"), 0, 1},
		{New("abab"), New("ab"), 1, 2},
		{abcdef, New("cd"), -4, 2},
	}
	for _, c := range cases {
		if got := c.haystack.IndexOfFrom(c.needle, c.from); got != c.want {
			t.Fatalf("%q.IndexOfFrom(%q, %d) = %d, want %d", c.haystack, c.needle, c.from, got, c.want)
		}
	}
}

func TestIndexOfEmptyNeedle(t *testing.T) {
	abc, empty := New("abc"), New("")
	if got := abc.IndexOf(empty); got != 0 {
		t.Fatalf("IndexOf(empty) = %d, want 0", got)
	}
	for k := 0; k < abc.Len(); k++ {
		if got := abc.IndexOfFrom(empty, k); got != k {
			t.Fatalf("IndexOfFrom(empty, %d) = %d, want %d", k, got, k)
		}
	}
	for _, k := range []int{3, 4, 100} {
		if got := abc.IndexOfFrom(empty, k); got != abc.Len() {
			t.Fatalf("IndexOfFrom(empty, %d) = %d, want %d", k, got, abc.Len())
		}
	}
	if got := empty.IndexOf(empty); got != 0 {
		t.Fatalf("empty.IndexOf(empty) = %d, want 0", got)
	}
}

func TestIndexOfPastEnd(t *testing.T) {
	if got := New("abc").IndexOfFrom(New("c"), 3); got != -1 {
		t.Fatalf("IndexOfFrom past end = %d, want -1", got)
	}
}
