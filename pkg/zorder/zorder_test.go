package zorder

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip2D(t *testing.T) {
	for x := uint32(0); x < 64; x++ {
		for y := uint32(0); y < 64; y++ {
			code := Encode2(x, y)
			if got := Decode2X(code); got != x {
				t.Fatalf("Decode2X(Encode2(%d,%d)) = %d, want %d", x, y, got, x)
			}
			if got := Decode2Y(code); got != y {
				t.Fatalf("Decode2Y(Encode2(%d,%d)) = %d, want %d", x, y, got, y)
			}
		}
	}
}

func TestEncodeDecodeRoundTrip3D(t *testing.T) {
	for x := uint32(0); x < 16; x++ {
		for y := uint32(0); y < 16; y++ {
			for z := uint32(0); z < 16; z++ {
				code := Encode3(x, y, z)
				if got := Decode3X(code); got != x {
					t.Fatalf("Decode3X(Encode3(%d,%d,%d)) = %d, want %d", x, y, z, got, x)
				}
				if got := Decode3Y(code); got != y {
					t.Fatalf("Decode3Y(Encode3(%d,%d,%d)) = %d, want %d", x, y, z, got, y)
				}
				if got := Decode3Z(code); got != z {
					t.Fatalf("Decode3Z(Encode3(%d,%d,%d)) = %d, want %d", x, y, z, got, z)
				}
			}
		}
	}
}

func TestLitmaxBigmin2D(t *testing.T) {
	litmax, bigmin := LitmaxBigmin2D(123, 456)
	if litmax != 221 || bigmin != 298 {
		t.Errorf("LitmaxBigmin2D(123, 456) = (%d, %d), want (221, 298)", litmax, bigmin)
	}

	// A degenerate range passes through unchanged.
	litmax, bigmin = LitmaxBigmin2D(3, 3)
	if litmax != 3 || bigmin != 3 {
		t.Errorf("LitmaxBigmin2D(3, 3) = (%d, %d), want (3, 3)", litmax, bigmin)
	}
}

func TestSplitBBox2D(t *testing.T) {
	got, err := SplitBBox2D(3, 48)
	if err != nil {
		t.Fatalf("SplitBBox2D(3, 48) returned error: %v", err)
	}
	want := []uint32{3, 3, 6, 7, 9, 9, 11, 15, 18, 18, 24, 24, 26, 26, 33, 33, 36, 37, 48, 48}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitBBox2D(3, 48) = %v, want %v", got, want)
	}
}

func TestSplitBBox2DRejectsInvertedBox(t *testing.T) {
	if _, err := SplitBBox2D(4, 3); !errors.Is(err, ErrBBoxInverted) {
		t.Errorf("SplitBBox2D(4, 3) error = %v, want ErrBBoxInverted", err)
	}
}

func TestRangeContainedInBBox2D(t *testing.T) {
	if _, err := rangeContainedInBBox2D(3, 4); err == nil {
		t.Errorf("rangeContainedInBBox2D(3, 4) expected an inverted-box error")
	}
	got, err := rangeContainedInBBox2D(2, 3)
	if err != nil {
		t.Fatalf("rangeContainedInBBox2D(2, 3) returned error: %v", err)
	}
	if !got {
		t.Errorf("rangeContainedInBBox2D(2, 3) = false, want true")
	}
}

// TestSplitBBox2DCoversEveryCode checks that the ranges SplitBBox2D returns
// for a small bounding box exactly partition the Morton codes of every
// point inside that box, with no gaps or overlaps.
func TestSplitBBox2DCoversEveryCode(t *testing.T) {
	const w, h = 5, 4
	covered := make(map[uint32]bool)
	for x := uint32(0); x < w; x++ {
		for y := uint32(0); y < h; y++ {
			covered[Encode2(x, y)] = true
		}
	}

	tl := Encode2(0, 0)
	br := Encode2(w-1, h-1)
	ranges, err := SplitBBox2D(tl, br)
	if err != nil {
		t.Fatalf("SplitBBox2D returned error: %v", err)
	}

	seen := make(map[uint32]bool)
	for i := 0; i+1 < len(ranges); i += 2 {
		for code := ranges[i]; code <= ranges[i+1]; code++ {
			x, y := Decode2X(code), Decode2Y(code)
			if x >= w || y >= h {
				t.Errorf("code %d (x=%d,y=%d) lies outside the box", code, x, y)
				continue
			}
			if seen[code] {
				t.Errorf("code %d covered by more than one range", code)
			}
			seen[code] = true
		}
	}
	for code := range covered {
		if !seen[code] {
			t.Errorf("code %d (x=%d,y=%d) not covered by SplitBBox2D ranges", code, Decode2X(code), Decode2Y(code))
		}
	}
}
