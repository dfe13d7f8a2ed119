package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected limit passthrough, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	p = Params{Page: 0, Limit: 10}
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected offset 0 for first page, got %d", got)
	}
}

func TestLastPage(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}
	for _, tc := range cases {
		if got := LastPage(tc.total, tc.limit); got != tc.want {
			t.Fatalf("LastPage(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
