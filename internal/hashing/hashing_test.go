package hashing

import "testing"

// TestByteMatchesFNVParameters pins the FNV-32 constants: hashing a single
// byte must equal one multiply-then-xor round from the offset basis.
func TestByteMatchesFNVParameters(t *testing.T) {
	basis := uint32(offset32)
	for _, b := range []byte{0x00, 'a', 'z', 0x7f, 0xff} {
		want := (basis * prime32) ^ uint32(b)
		if got := Byte(b); got != want {
			t.Errorf("Byte(0x%02x) = %08x, want %08x", b, got, want)
		}
	}
}

// TestUint32LittleEndian verifies the byte order: the low byte is folded
// in first.
func TestUint32LittleEndian(t *testing.T) {
	v := uint32(0x04030201)
	h := uint32(offset32)
	for _, b := range []byte{0x01, 0x02, 0x03, 0x04} {
		h *= prime32
		h ^= uint32(b)
	}
	if got := Uint32(v); got != h {
		t.Errorf("Uint32(%08x) = %08x, want %08x", v, got, h)
	}
}

func TestUint32s(t *testing.T) {
	if got := Uint32s(nil); got != offset32 {
		t.Errorf("Uint32s(nil) = %08x, want offset basis %08x", got, uint32(offset32))
	}

	a := Uint32s([]uint32{1, 2, 3})
	b := Uint32s([]uint32{1, 2, 3})
	if a != b {
		t.Errorf("identical sequences hash differently: %08x vs %08x", a, b)
	}
	if c := Uint32s([]uint32{3, 2, 1}); c == a {
		t.Errorf("order-insensitive hash: %08x", c)
	}
	if c := Uint32s([]uint32{1, 2}); c == a {
		t.Errorf("prefix hashes equal to full sequence: %08x", c)
	}
}

func TestStringStability(t *testing.T) {
	if String("") != offset32 {
		t.Error("String(\"\") should be the offset basis")
	}
	if String("abc") == String("abd") {
		t.Error("distinct strings should hash apart")
	}
	if String("abc") != String("abc") {
		t.Error("String is not deterministic")
	}
}
