package frozen

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/klauspost/compress/zstd"
)

// Binary artifact layout:
//
//	magic "FZDF" | version byte | siphash-64 of payload | raw payload
//	length u32 | zstd frame of payload
//
// and inside the payload, little-endian throughout:
//
//	alphabetSize u32 | flags u32 | NStates u32 | NChars u32 |
//	chs bytes | transitions NStates×NChars u16 | accept bitmap
//
// The checksum is keyed with fixed constants: it detects corruption and
// truncation, it is not an authentication mechanism. Decoded tables are
// additionally validated structurally, so a forged artifact can reject
// valid inputs at worst, never index out of bounds.

const (
	artifactMagic   = "FZDF"
	artifactVersion = 1

	flagPreIndexed = 1 << 0

	// Fixed siphash keys for the artifact checksum.
	checksumKey0 = 0x66726f7a656e6466 // "frozendf"
	checksumKey1 = 0x6473746174657301
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(err)
	}
	zstdEncoder = e
	d, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	zstdDecoder = d
}

// MarshalBinary encodes the frozen tables as a compressed, checksummed
// artifact suitable for writing to disk or embedding.
func (f *Frozen) MarshalBinary() ([]byte, error) {
	nstates := f.Size()
	nchars := f.NumChars()

	payloadLen := 16 + nchars + 2*nstates*nchars + (nstates+7)/8
	payload := make([]byte, 0, payloadLen)

	var u32 [4]byte
	put32 := func(v uint32) {
		binary.LittleEndian.PutUint32(u32[:], v)
		payload = append(payload, u32[:]...)
	}
	put32(uint32(f.alphabetSize))
	flags := uint32(0)
	if f.PreIndexed() {
		flags |= flagPreIndexed
	}
	put32(flags)
	put32(uint32(nstates))
	put32(uint32(nchars))

	payload = append(payload, f.chs...)

	var u16 [2]byte
	for _, row := range f.transitions {
		for _, to := range row {
			binary.LittleEndian.PutUint16(u16[:], to)
			payload = append(payload, u16[:]...)
		}
	}

	bitmap := make([]byte, (nstates+7)/8)
	for i, ok := range f.accept {
		if ok {
			bitmap[i/8] |= 1 << (i % 8)
		}
	}
	payload = append(payload, bitmap...)

	sum := siphash.Hash(checksumKey0, checksumKey1, payload)

	out := make([]byte, 0, len(artifactMagic)+1+8+4+len(payload)/2)
	out = append(out, artifactMagic...)
	out = append(out, artifactVersion)
	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], sum)
	out = append(out, u64[:]...)
	binary.LittleEndian.PutUint32(u32[:], uint32(len(payload)))
	out = append(out, u32[:]...)
	return zstdEncoder.EncodeAll(payload, out), nil
}

// UnmarshalBinary decodes an artifact produced by MarshalBinary, verifying
// the checksum and the structural invariants of the tables before
// replacing the receiver's contents.
func (f *Frozen) UnmarshalBinary(data []byte) error {
	headerLen := len(artifactMagic) + 1 + 8 + 4
	if len(data) < headerLen {
		return &FreezeError{Kind: BadArtifact, Message: "artifact too short"}
	}
	if string(data[:len(artifactMagic)]) != artifactMagic {
		return &FreezeError{Kind: BadArtifact, Message: "bad artifact magic"}
	}
	if data[len(artifactMagic)] != artifactVersion {
		return &FreezeError{Kind: BadArtifact, Message: "unsupported artifact version"}
	}
	wantSum := binary.LittleEndian.Uint64(data[len(artifactMagic)+1:])
	rawLen := int(binary.LittleEndian.Uint32(data[len(artifactMagic)+9:]))

	payload, err := zstdDecoder.DecodeAll(data[headerLen:], make([]byte, 0, rawLen))
	if err != nil {
		return &FreezeError{Kind: BadArtifact, Message: "artifact decompression failed", Cause: err}
	}
	if len(payload) != rawLen {
		return &FreezeError{Kind: BadArtifact, Message: "artifact length disagrees with header"}
	}
	if siphash.Hash(checksumKey0, checksumKey1, payload) != wantSum {
		return &FreezeError{Kind: ChecksumMismatch, Message: "artifact checksum mismatch"}
	}

	if len(payload) < 16 {
		return &FreezeError{Kind: BadArtifact, Message: "artifact payload too short"}
	}
	alphabetSize := int(binary.LittleEndian.Uint32(payload[0:]))
	flags := binary.LittleEndian.Uint32(payload[4:])
	nstates := int(binary.LittleEndian.Uint32(payload[8:]))
	nchars := int(binary.LittleEndian.Uint32(payload[12:]))

	if nstates < 1 || nstates > maxStates || nchars < 0 || nchars > maxChars {
		return &FreezeError{Kind: BadArtifact, Message: "artifact table counts out of range"}
	}
	want := 16 + nchars + 2*nstates*nchars + (nstates+7)/8
	if len(payload) != want {
		return &FreezeError{Kind: BadArtifact, Message: "artifact payload size disagrees with table counts"}
	}

	off := 16
	chs := append([]byte(nil), payload[off:off+nchars]...)
	off += nchars

	transitions := make([][]uint16, nstates)
	for i := range transitions {
		row := make([]uint16, nchars)
		for j := range row {
			row[j] = binary.LittleEndian.Uint16(payload[off:])
			off += 2
		}
		transitions[i] = row
	}

	accept := make([]bool, nstates)
	bitmap := payload[off:]
	for i := range accept {
		accept[i] = bitmap[i/8]&(1<<(i%8)) != 0
	}

	dec := Frozen{
		chs:          chs,
		transitions:  transitions,
		accept:       accept,
		alphabetSize: alphabetSize,
	}
	if err := dec.validate(); err != nil {
		return err
	}
	if flags&flagPreIndexed != 0 {
		dec.index = dec.buildIndex()
	}
	*f = dec
	return nil
}
