package sizeclass

import "testing"

func TestAlignedSizeMonotone(t *testing.T) {
	prev := AlignedSize(1)
	for n := 2; n <= MaxBytes; n++ {
		got := AlignedSize(n)
		if got < prev {
			t.Fatalf("AlignedSize(%d)=%d < AlignedSize(%d-1)=%d, not monotone", n, got, n, prev)
		}
		if got < n {
			t.Fatalf("AlignedSize(%d)=%d rounds down", n, got)
		}
		prev = got
	}
}

func TestAlignedSizeBoundaries(t *testing.T) {
	cases := []struct{ in, want int }{
		{1, 8},
		{8, 8},
		{9, 16},
		{128, 128},
		{129, 144},
		{1024, 1024},
		{1025, 1152},
		{8192, 8192},
		{8193, 9216},
		{MaxBytes, MaxBytes},
	}
	for _, c := range cases {
		if got := AlignedSize(c.in); got != c.want {
			t.Errorf("AlignedSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClassIndexRoundTrip(t *testing.T) {
	for cls, want := range classSizes {
		got := ClassObjectSize(cls)
		if got != want {
			t.Fatalf("ClassObjectSize(%d) = %d, want %d", cls, got, want)
		}
		if ClassIndex(want) != cls {
			t.Fatalf("ClassIndex(%d) = %d, want %d", want, ClassIndex(want), cls)
		}
	}
}

func TestClassIndexOutOfRangePanics(t *testing.T) {
	for _, n := range []int{0, -1, MaxBytes + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ClassIndex(%d) did not panic", n)
				}
			}()
			ClassIndex(n)
		}()
	}
}

func TestBatchLimitClamped(t *testing.T) {
	for n := 1; n <= MaxBytes; n *= 2 {
		b := BatchLimit(n)
		if b < 2 || b > 512 {
			t.Fatalf("BatchLimit(%d) = %d, out of [2, 512]", n, b)
		}
	}
	if BatchLimit(MaxBytes) != 2 {
		t.Errorf("BatchLimit(MaxBytes) = %d, want 2", BatchLimit(MaxBytes))
	}
}

func TestSpanPageCountCarriesABatch(t *testing.T) {
	for n := 1; n <= MaxBytes; n *= 3 {
		aligned := AlignedSize(n)
		pages := SpanPageCount(n)
		objectsPerSpan := (pages * PageSize) / aligned
		if objectsPerSpan < BatchLimit(n) {
			t.Fatalf("SpanPageCount(%d): span of %d pages carries %d objects, fewer than BatchLimit %d", n, pages, objectsPerSpan, BatchLimit(n))
		}
	}
}

func TestNumClassesMatchesTable(t *testing.T) {
	if NumClasses != len(classSizes) {
		t.Fatalf("NumClasses = %d, len(classSizes) = %d", NumClasses, len(classSizes))
	}
	if NumClasses == 0 {
		t.Fatal("empty size-class table")
	}
}
