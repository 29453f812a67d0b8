//go:build linux

package gamepad

import (
	"encoding/binary"
	"testing"
	"unsafe"
)

func TestFFEffectMatchesKernelLayout(t *testing.T) {
	want := uintptr(44)
	if unsafe.Sizeof(uintptr(0)) == 8 {
		want = 48
	}
	if got := unsafe.Sizeof(ffEffect{}); got != want {
		t.Fatalf("ffEffect is %d bytes, want %d", got, want)
	}
	if got := binary.Size(ffEffect{}); got != int(want) {
		t.Fatalf("encoded ffEffect is %d bytes, want %d", got, want)
	}
	if sfff := uintptr(0x40004580) | want<<16; eviocSFF != sfff {
		t.Fatalf("EVIOCSFF = %#x, want %#x", eviocSFF, sfff)
	}
	if unsafe.Sizeof(uintptr(0)) == 8 && eviocSFF != 0x40304580 {
		t.Fatalf("EVIOCSFF = %#x, want 0x40304580", eviocSFF)
	}
}

func TestFFEffectRumbleOffsets(t *testing.T) {
	var e ffEffect
	if off := unsafe.Offsetof(e.Replay); off != 10 {
		t.Fatalf("replay at offset %d, want 10", off)
	}
	if off := unsafe.Offsetof(e.Strong); off != 16 {
		t.Fatalf("strong magnitude at offset %d, want 16", off)
	}
	if off := unsafe.Offsetof(e.Weak); off != 18 {
		t.Fatalf("weak magnitude at offset %d, want 18", off)
	}
}
