// Package hashing provides the 32-bit FNV hashing used for DFA state
// identity and for the open-addressed containers.
//
// All entry points share one scheme: FNV-32 with offset basis 0x811c9dc5
// and prime 0x01000193, multiply-then-xor. Single 32-bit values are fed as
// little-endian bytes; id sequences fold one whole word per round, so two
// sequences hash equal iff they are element-wise equal modulo collisions.
// State interning does not rely on collision freedom (states are keyed by
// the packed sequence itself); the hash only seeds probe positions and
// provides the reported state id.
package hashing

import "hash/fnv"

// Byte hashes a single byte.
func Byte(b byte) uint32 {
	h := fnv.New32()
	_, _ = h.Write([]byte{b})
	return h.Sum32()
}

// Uint32 hashes a 32-bit value, little-endian.
func Uint32(v uint32) uint32 {
	h := fnv.New32()
	_, _ = h.Write([]byte{
		byte(v),
		byte(v >> 8),
		byte(v >> 16),
		byte(v >> 24),
	})
	return h.Sum32()
}

// FNV-32 parameters, shared with hash/fnv.
const (
	offset32 = 0x811c9dc5
	prime32  = 0x01000193
)

// Uint32s hashes a sequence of 32-bit values with no length prefix: one
// multiply-then-xor round per element, folding in the whole word. The empty
// sequence hashes to the offset basis.
func Uint32s(vs []uint32) uint32 {
	h := uint32(offset32)
	for _, v := range vs {
		h *= prime32
		h ^= v
	}
	return h
}

// String hashes the raw bytes of s. Used by containers keyed by packed id
// sequences.
func String(s string) uint32 {
	h := fnv.New32()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
