package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 2, 4}, Span{1, 8, 10}, Span{1, 2, 10}},
		{"nested", Span{1, 0, 10}, Span{1, 3, 4}, Span{1, 0, 10}},
		{"other file ignored", Span{1, 2, 4}, Span{2, 0, 10}, Span{1, 2, 4}},
		{"zero takes other", Span{}, Span{3, 1, 2}, Span{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q %v", s, ok)
	}
	a := in.Intern("console")
	b := in.Intern("console")
	if a != b || a == NoStringID {
		t.Fatalf("Intern must be stable: %d %d", a, b)
	}
	if _, ok := in.Find("log"); ok {
		t.Errorf("Find must not insert")
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
	if got := in.MustLookup(a); got != "console" {
		t.Errorf("MustLookup = %q", got)
	}
}
