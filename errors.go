package stm32crc

import "errors"

// ErrBitWidth indicates a lookup table width that does not fit the 32-bit
// register, i.e. outside [1, 32].
var ErrBitWidth = errors.New("stm32crc: bit width must be between 1 and 32")
