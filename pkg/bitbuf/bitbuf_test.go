package bitbuf

import "testing"

func checkBitBuffer(t *testing.T, offset uint32) {
	t.Helper()
	buf := NewBitBuffer(offset + 3)

	if buf.Get(offset) || buf.Get(offset+1) || buf.Get(offset+2) {
		t.Fatalf("expected fresh buffer to be all zero")
	}

	buf.SetOne(offset + 1)
	if buf.Get(offset) || !buf.Get(offset+1) || buf.Get(offset+2) {
		t.Fatalf("unexpected bits after SetOne(offset+1)")
	}

	buf.SetOne(offset + 2)
	if buf.Get(offset) || !buf.Get(offset+1) || !buf.Get(offset+2) {
		t.Fatalf("unexpected bits after SetOne(offset+2)")
	}

	buf.SetOne(offset)
	if !buf.Get(offset) || !buf.Get(offset+1) || !buf.Get(offset+2) {
		t.Fatalf("unexpected bits after SetOne(offset)")
	}

	buf.SetZero(offset + 1)
	if !buf.Get(offset) || buf.Get(offset+1) || !buf.Get(offset+2) {
		t.Fatalf("unexpected bits after SetZero(offset+1)")
	}
}

func TestBitBuffer(t *testing.T) {
	checkBitBuffer(t, 0)
	checkBitBuffer(t, 2)
	checkBitBuffer(t, 100)
}

func TestBitBufferOutOfRangePanics(t *testing.T) {
	buf := NewBitBuffer(3)
	for _, f := range []func(){
		func() { buf.SetOne(3) },
		func() { buf.SetZero(3) },
		func() { buf.Get(3) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic on out-of-range access")
				}
			}()
			f()
		}()
	}
}

func TestIntBufferWidthZero(t *testing.T) {
	buf := NewIntBuffer(4, 0)
	for i := uint32(0); i < 4; i++ {
		buf.Push(0)
	}
	for i := uint32(0); i < 4; i++ {
		if got := buf.Get(i); got != 0 {
			t.Errorf("Get(%d) = %d, want 0", i, got)
		}
	}
}

func TestIntBufferStraddlesBlocks(t *testing.T) {
	const width = 13
	values := []uint32{0, 1, 8191, 4095, 17, 8190, 1000, 8191}
	buf := NewIntBuffer(uint32(len(values)), width)
	for _, v := range values {
		buf.Push(v)
	}
	for i, want := range values {
		if got := buf.Get(uint32(i)); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestIntBufferFullWidth(t *testing.T) {
	values := []uint32{0, 1, 0xFFFFFFFF, 0x80000000, 12345678}
	buf := NewIntBuffer(uint32(len(values)), 32)
	for _, v := range values {
		buf.Push(v)
	}
	for i, want := range values {
		if got := buf.Get(uint32(i)); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestIntBufferPushBeyondLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	buf := NewIntBuffer(1, 4)
	buf.Push(1)
	buf.Push(1)
}

func TestIntBufferPushOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	buf := NewIntBuffer(1, 4)
	buf.Push(16)
}
