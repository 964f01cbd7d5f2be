package wavelet

import (
	"testing"

	"github.com/xflash-panda/succinct/pkg/bitvec"
)

// spotMatrix builds the matrix over the canonical [1,3,3,2,7] / max_symbol=7
// sequence, used throughout this file's scenario tests.
func spotMatrix() *Matrix {
	return New([]uint32{1, 3, 3, 2, 7}, 7, bitvec.DenseOptions{}, nil)
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	f()
}

func TestMatrixNumLevels(t *testing.T) {
	m := spotMatrix()
	if got := m.NumLevels(); got != 3 {
		t.Errorf("NumLevels() = %d, want 3", got)
	}
	if got := m.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := m.MaxSymbol(); got != 7 {
		t.Errorf("MaxSymbol() = %d, want 7", got)
	}
}

func TestMatrixGet(t *testing.T) {
	m := spotMatrix()
	want := []uint32{1, 3, 3, 2, 7}
	for i, w := range want {
		if got := m.Get(uint32(i)); got != w {
			t.Errorf("Get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestMatrixCount(t *testing.T) {
	m := spotMatrix()
	cases := []struct {
		symbol, want uint32
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 0}, {5, 0}, {6, 0}, {7, 1},
	}
	for _, c := range cases {
		if got := m.Count(0, 5, c.symbol); got != c.want {
			t.Errorf("Count(0, 5, %d) = %d, want %d", c.symbol, got, c.want)
		}
	}
}

func TestMatrixPrecedingCount(t *testing.T) {
	m := spotMatrix()
	cases := []struct {
		symbol, want uint32
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {7, 4},
	}
	for _, c := range cases {
		if got := m.PrecedingCount(0, 5, c.symbol); got != c.want {
			t.Errorf("PrecedingCount(0, 5, %d) = %d, want %d", c.symbol, got, c.want)
		}
	}

	mustPanic(t, "PrecedingCount(symbol>maxSymbol)", func() {
		m.PrecedingCount(0, 5, 8)
	})
}

func TestMatrixQuantile(t *testing.T) {
	m := spotMatrix()
	cases := []struct {
		k, wantSymbol, wantCount uint32
	}{
		{0, 1, 1},
		{1, 2, 1},
		{2, 3, 2},
		{3, 3, 2},
		{4, 7, 1},
	}
	for _, c := range cases {
		symbol, count := m.Quantile(0, 5, c.k)
		if symbol != c.wantSymbol || count != c.wantCount {
			t.Errorf("Quantile(0, 5, %d) = (%d, %d), want (%d, %d)", c.k, symbol, count, c.wantSymbol, c.wantCount)
		}
	}

	mustPanic(t, "Quantile(k out of range)", func() {
		m.Quantile(0, 5, 5)
	})
}

func TestMatrixSimpleMajority(t *testing.T) {
	m := spotMatrix()
	cases := []struct {
		name               string
		start, end         uint32
		wantSymbol         uint32
		wantOK             bool
	}{
		{"0..len", 0, 5, 0, false},
		{"0..3", 0, 3, 3, true},
		{"0..1", 0, 1, 1, true},
		{"1..len-1", 1, 4, 3, true},
		{"1..len", 1, 5, 0, false},
	}
	for _, c := range cases {
		symbol, ok := m.SimpleMajority(c.start, c.end)
		if ok != c.wantOK || (ok && symbol != c.wantSymbol) {
			t.Errorf("%s: SimpleMajority(%d, %d) = (%d, %v), want (%d, %v)",
				c.name, c.start, c.end, symbol, ok, c.wantSymbol, c.wantOK)
		}
	}
}

func TestMatrixSelect(t *testing.T) {
	m := spotMatrix()

	if got, ok := m.Select(0, 5, 3, 0, 0); !ok || got != 1 {
		t.Errorf("Select(0, 5, 3, 0, 0) = (%d, %v), want (1, true)", got, ok)
	}
	if got, ok := m.Select(0, 5, 3, 1, 0); !ok || got != 2 {
		t.Errorf("Select(0, 5, 3, 1, 0) = (%d, %v), want (2, true)", got, ok)
	}
	if _, ok := m.Select(0, 5, 3, 2, 0); ok {
		t.Errorf("Select(0, 5, 3, 2, 0) expected no third occurrence")
	}
	if _, ok := m.Select(0, 5, 8, 0, 0); ok {
		t.Errorf("Select(0, 5, 8, 0, 0) expected false for symbol beyond max_symbol")
	}
}

func TestMatrixSelectLast(t *testing.T) {
	m := spotMatrix()

	if got, ok := m.SelectLast(0, 5, 3, 0, 0); !ok || got != 2 {
		t.Errorf("SelectLast(0, 5, 3, 0, 0) = (%d, %v), want (2, true)", got, ok)
	}
	if got, ok := m.SelectLast(0, 5, 3, 1, 0); !ok || got != 1 {
		t.Errorf("SelectLast(0, 5, 3, 1, 0) = (%d, %v), want (1, true)", got, ok)
	}
}

func TestMatrixCountBatch(t *testing.T) {
	m := spotMatrix()

	got := m.CountBatch(0, 5, []SymbolRange{{0, 10}})
	want := []uint32{5}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("CountBatch([0..=10]) = %v, want %v", got, want)
	}

	got = m.CountBatch(0, 5, []SymbolRange{{0, 5}, {6, 10}})
	want = []uint32{4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountBatch([0..=5,6..=10])[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	got = m.CountBatch(0, 5, []SymbolRange{{0, 2}, {3, 3}, {4, 10}})
	want = []uint32{2, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountBatch([0..=2,3..=3,4..=10])[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMatrixSelectFirstLessThan(t *testing.T) {
	m := spotMatrix()

	// No symbol is <= 0 in this sequence.
	if _, ok := m.SelectFirstLessThan(0, 0, 5); ok {
		t.Errorf("SelectFirstLessThan(0, 0, 5) expected no match")
	}
	// data[0]=1 is the first symbol <= 1.
	if got, ok := m.SelectFirstLessThan(1, 0, 5); !ok || got != 0 {
		t.Errorf("SelectFirstLessThan(1, 0, 5) = (%d, %v), want (0, true)", got, ok)
	}
	// Restricting to index 1.. skips data[0]; data[3]=2 is the first <= 2.
	if got, ok := m.SelectFirstLessThan(2, 1, 5); !ok || got != 3 {
		t.Errorf("SelectFirstLessThan(2, 1, 5) = (%d, %v), want (3, true)", got, ok)
	}
}

func TestMatrixLocateBatch(t *testing.T) {
	m := spotMatrix()
	entries := m.LocateBatch([][2]uint32{{0, 5}}, []uint32{3})
	if len(entries) != 1 {
		t.Fatalf("LocateBatch returned %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Start != 2 || e.End != 4 || e.PrecedingCount != 2 {
		t.Errorf("LocateBatch([0,5], [3]) = %+v, want Start=2 End=4 PrecedingCount=2", e)
	}
}

func TestMatrixCounts(t *testing.T) {
	m := spotMatrix()
	entries := m.Counts([][2]uint32{{0, 5}}, 2, 3)

	total := uint32(0)
	for _, e := range entries {
		if e.Symbol < 2 || e.Symbol > 3 {
			t.Errorf("Counts entry symbol %d outside requested [2,3]", e.Symbol)
		}
		total += e.End - e.Start
	}
	if total != 3 { // one 2 and two 3s
		t.Errorf("Counts([0,5], 2, 3) covered %d occurrences, want 3", total)
	}
}

func TestMatrixEmptySequence(t *testing.T) {
	m := New(nil, 7, bitvec.DenseOptions{}, nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for empty sequence", m.Len())
	}
}

func TestMatrixSmallAlphabetConstruction(t *testing.T) {
	// With a large enough sequence relative to the alphabet, New takes the
	// dense-histogram construction path (buildBitvecs) instead of the
	// stable-partition path; both must agree on Get.
	data := make([]uint32, 64)
	for i := range data {
		data[i] = uint32(i) % 4
	}
	m := New(data, 3, bitvec.DenseOptions{}, nil)
	for i, want := range data {
		if got := m.Get(uint32(i)); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}
