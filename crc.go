// Package stm32crc computes the CRC32 produced by the hardware CRC
// peripheral of STM32-class microcontrollers, for buffers of any length.
//
// The peripheral consumes its input 4 bytes at a time, each word's bytes
// last-first. A trailing partial word is byte-reversed and zero-padded to
// 4 bytes before folding, so the pad bytes enter the accumulator first.
// That ordering is undocumented hardware behavior and is reproduced here
// bit-for-bit.
package stm32crc

import "sync"

// Poly is the generator polynomial of the peripheral's CRC variant.
const Poly uint32 = 0x04_c1_1d_b7

// Seed is the initial value of the CRC accumulator.
const Seed uint32 = 0xff_ff_ff_ff

// MakeTable builds the lookup table for byte indexes of the given bit
// width: entry i holds the remainder of i, shifted into the top bits of a
// 32-bit register, after bits rounds of polynomial division. The engine
// uses the 8-bit table; other widths up to 32 are accepted so the table
// can be inspected or persisted. Widths of 0 or more than 32 return
// ErrBitWidth.
func MakeTable(bits uint) ([]uint32, error) {
	if bits == 0 || bits > 32 {
		return nil, ErrBitWidth
	}

	table := make([]uint32, 1<<bits)
	for i := range table {
		rr := uint32(i) << (32 - bits)
		for range bits {
			top := rr&0x80_00_00_00 != 0
			rr = rr << 1
			if top {
				rr = rr ^ Poly
			}
		}
		table[i] = rr
	}
	return table, nil
}

// table8 hands out the engine's 8-bit table, built at most once per
// process and read-only afterwards.
var table8 = sync.OnceValue(func() []uint32 {
	table, err := MakeTable(8)
	if err != nil {
		panic(err)
	}
	return table
})

// Update folds p into crc and returns the new accumulator. Feeding one
// call's result as the next call's crc checksums a buffer incrementally;
// the result matches a single pass over the concatenation only when every
// split falls on a 4-byte boundary, because a trailing partial word is
// padded before folding.
func Update(crc uint32, p []byte) uint32 {
	table := table8()
	for off := 0; off < len(p); off += 4 {
		crc = foldWord(table, crc, p[off:min(off+4, len(p))])
	}
	return crc
}

// Checksum returns the peripheral's CRC32 of p, starting from Seed.
func Checksum(p []byte) uint32 {
	return Update(Seed, p)
}

func foldWord(table []uint32, crc uint32, word []byte) (r uint32) {
	var w [4]byte
	if len(word) == 4 {
		copy(w[:], word)
	} else {
		// partial final word: reversed, then zero-padded on the right
		for idx, b := range word {
			w[len(word)-1-idx] = b
		}
	}

	r = crc
	for idx := range 4 {
		b := uint32(w[3-idx])
		r = r<<8 ^ table[(r>>24)^b]
	}
	return
}
