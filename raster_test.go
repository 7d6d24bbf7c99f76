package gifdecoder

import "testing"

func TestNewRasterBufferIsBlack(t *testing.T) {
	rb := NewRasterBuffer(2, 2)
	for y := uint32(0); y < 2; y++ {
		for x := uint32(0); x < 2; x++ {
			if got := rb.Get(x, y); got != (RGB{}) {
				t.Errorf("(%d,%d): got %+v, want zero", x, y, got)
			}
		}
	}
}

func TestRasterBufferPutAndGet(t *testing.T) {
	rb := NewRasterBuffer(4, 4)
	rb.Put(1, 1, RGB{10, 20, 30})
	if got := rb.Get(1, 1); got != (RGB{10, 20, 30}) {
		t.Errorf("got %+v, want {10 20 30}", got)
	}
	if got := rb.Get(3, 3); got != (RGB{}) {
		t.Errorf("untouched pixel: got %+v, want zero", got)
	}
}

func TestRasterBufferGetOutOfBounds(t *testing.T) {
	rb := NewRasterBuffer(2, 2)
	if _, ok := rb.GetChecked(5, 5); ok {
		t.Error("expected out-of-bounds GetChecked to report false")
	}
}

func TestRasterBufferPutRectClips(t *testing.T) {
	rb := NewRasterBuffer(3, 3)
	pixels := []RGB{
		{1, 1, 1}, {2, 2, 2},
		{3, 3, 3}, {4, 4, 4},
	}
	if err := rb.PutRect(2, 2, 2, 2, pixels); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rb.Get(2, 2); got != (RGB{1, 1, 1}) {
		t.Errorf("(2,2): got %+v, want {1 1 1}", got)
	}
	// (3,2), (2,3), (3,3) all fall outside the 3x3 canvas and must be dropped silently.
}

func TestRasterBufferPutRectNotEnoughPixels(t *testing.T) {
	rb := NewRasterBuffer(4, 4)
	err := rb.PutRect(0, 0, 2, 2, []RGB{{1, 1, 1}})
	if err == nil {
		t.Fatal("expected error for undersized pixel slice")
	}
}

func TestRasterBufferFromSlice(t *testing.T) {
	data := make([]byte, 2*2*rasterChannels)
	rb, ok := NewRasterBufferFromSlice(2, 2, data)
	if !ok {
		t.Fatal("expected ok for exactly-sized slice")
	}
	if rb.Width() != 2 || rb.Height() != 2 {
		t.Errorf("got %dx%d, want 2x2", rb.Width(), rb.Height())
	}
}

func TestRasterBufferFromSliceTooSmall(t *testing.T) {
	if _, ok := NewRasterBufferFromSlice(2, 2, make([]byte, 1)); ok {
		t.Error("expected ok=false for undersized slice")
	}
}

func TestRasterBufferImplementsImage(t *testing.T) {
	rb := NewRasterBuffer(5, 7)
	b := rb.Bounds()
	if b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("Bounds() = %v, want 5x7", b)
	}
	rb.Put(1, 1, RGB{9, 8, 7})
	r, g, bl, a := rb.At(1, 1).RGBA()
	if a == 0 {
		t.Error("expected fully opaque alpha")
	}
	if r == 0 && g == 0 && bl == 0 {
		t.Error("expected non-zero color at (1,1)")
	}
}
