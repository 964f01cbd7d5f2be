package spatial

import (
	"testing"

	"go4.org/netipx"
)

// ipRangeFixtures turns a handful of IPv4 ranges into Point fixtures: the
// range's start address supplies (X, Y) from its last two octets, and the
// range's width supplies Attr. This is purely a source of realistic-looking
// integer pairs for tests; the package has no networking semantics.
func ipRangeFixtures(t *testing.T) []Point {
	t.Helper()
	specs := []string{
		"10.0.0.1-10.0.0.50",
		"10.0.1.1-10.0.1.5",
		"192.168.1.10-192.168.1.20",
		"192.168.2.100-192.168.2.240",
		"172.16.0.1-172.16.0.1",
	}

	points := make([]Point, 0, len(specs))
	for _, spec := range specs {
		r, err := netipx.ParseIPRange(spec)
		if err != nil {
			t.Fatalf("ParseIPRange(%q): %v", spec, err)
		}
		from, to := r.From().As4(), r.To().As4()
		width := uint32(to[3]) - uint32(from[3]) + 1
		points = append(points, Point{X: uint32(from[2]), Y: uint32(from[3]), Attr: width})
	}
	return points
}

func TestIndexCountInBoxCoversExactPoints(t *testing.T) {
	points := ipRangeFixtures(t)
	idx, err := NewIndex(points, 0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	var minX, minY, maxX, maxY uint32 = ^uint32(0), ^uint32(0), 0, 0
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	count, err := idx.CountInBox(minX, minY, maxX, maxY)
	if err != nil {
		t.Fatalf("CountInBox: %v", err)
	}
	if count < uint32(len(points)) {
		t.Errorf("CountInBox covering every point = %d, want at least %d", count, len(points))
	}

	// A box with no points in it counts zero.
	count, err = idx.CountInBox(maxX+10, maxY+10, maxX+20, maxY+20)
	if err != nil {
		t.Fatalf("CountInBox: %v", err)
	}
	if count != 0 {
		t.Errorf("CountInBox over an empty region = %d, want 0", count)
	}
}

func TestIndexCountInBoxCaches(t *testing.T) {
	points := ipRangeFixtures(t)
	idx, err := NewIndex(points, 0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	first, err := idx.CountInBox(0, 0, 255, 255)
	if err != nil {
		t.Fatalf("CountInBox: %v", err)
	}
	second, err := idx.CountInBox(0, 0, 255, 255)
	if err != nil {
		t.Fatalf("CountInBox: %v", err)
	}
	if first != second {
		t.Errorf("CountInBox not stable across cached calls: %d vs %d", first, second)
	}
}

func TestIndexQuantileInBox(t *testing.T) {
	points := ipRangeFixtures(t)
	idx, err := NewIndex(points, 0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	_, _, ok := idx.QuantileInBox(0, 0, 255, 255, uint32(len(points)))
	if ok {
		t.Errorf("QuantileInBox with k beyond the region's point count expected false")
	}

	attr, count, ok := idx.QuantileInBox(0, 0, 255, 255, 0)
	if !ok {
		t.Fatalf("QuantileInBox(0) expected a result over the full box")
	}
	if count == 0 {
		t.Errorf("QuantileInBox(0) count = 0, want at least 1")
	}
	_ = attr
}

func TestIndexEmpty(t *testing.T) {
	idx, err := NewIndex(nil, 0)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	count, err := idx.CountInBox(0, 0, 10, 10)
	if err != nil {
		t.Fatalf("CountInBox: %v", err)
	}
	if count != 0 {
		t.Errorf("CountInBox on empty index = %d, want 0", count)
	}
}
