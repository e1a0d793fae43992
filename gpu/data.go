// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Bytes returns the memory of a slice of fixed-size values (float32,
// int32, mgl32.Vec3, [2]int32, ...) as a byte slice without copying.
// The result aliases s.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// IndexType returns the narrowest unsigned index type able to hold largest.
func IndexType[T constraints.Unsigned](largest T) Enum {
	switch {
	case uint64(largest) <= math.MaxUint8:
		return UnsignedByte
	case uint64(largest) <= math.MaxUint16:
		return UnsignedShort
	}
	return UnsignedInt
}

// PackIndices encodes indices in the narrowest unsigned type that fits the
// largest index, little-endian as expected by the device, and returns the
// bytes along with that type.
func PackIndices[T constraints.Unsigned](indices []T) ([]byte, Enum) {
	var largest T
	for _, i := range indices {
		if i > largest {
			largest = i
		}
	}
	typ := IndexType(largest)
	n := TypeSize(typ)
	out := make([]byte, len(indices)*n)
	for k, i := range indices {
		switch typ {
		case UnsignedByte:
			out[k] = byte(i)
		case UnsignedShort:
			binary.LittleEndian.PutUint16(out[k*2:], uint16(i))
		default:
			binary.LittleEndian.PutUint32(out[k*4:], uint32(i))
		}
	}
	return out, typ
}
