package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover should be a no-op, got %v", got)
	}
}

func TestSpanBetween(t *testing.T) {
	prefix := Span{File: 1, Start: 0, End: 7}
	whole := Span{File: 1, Start: 0, End: 12}
	if got := prefix.Between(whole); got != (Span{File: 1, Start: 7, End: 12}) {
		t.Errorf("Between = %v", got)
	}
}

func TestSpanEmpty(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Errorf("zero-length span should be empty")
	}
	if (Span{Start: 3, End: 4}).Empty() {
		t.Errorf("non-empty span reported empty")
	}
}
