// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"encoding/binary"
	"math"

	"cogentcore.org/glview/gpu"
)

// surface is a 2D color image with an optional depth plane. Rows are
// stored bottom-up, like GL window coordinates. Integer surfaces hold
// unconverted integers in the color channels.
type surface struct {
	width, height int
	integer       bool
	color         [][4]float64
	depth         []float32
}

func newSurface(width, height int, integer, withDepth bool) *surface {
	s := &surface{
		width:   width,
		height:  height,
		integer: integer,
		color:   make([][4]float64, width*height),
	}
	if withDepth {
		s.depth = make([]float32, width*height)
		for i := range s.depth {
			s.depth[i] = 1
		}
	}
	return s
}

func (s *surface) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func isIntegerFormat(format gpu.Enum) bool {
	return format == gpu.RGInteger || format == gpu.RGBAInteger
}

// components returns the number of channels of a client pixel format.
func components(format gpu.Enum) int {
	switch format {
	case gpu.Red, gpu.DepthComponent:
		return 1
	case gpu.RG, gpu.RGInteger:
		return 2
	case gpu.RGB:
		return 3
	case gpu.RGBA, gpu.RGBAInteger:
		return 4
	}
	return 0
}

// decode reads one component of type typ from b.
func decode(b []byte, typ gpu.Enum, integer bool) float64 {
	switch typ {
	case gpu.UnsignedByte:
		if integer {
			return float64(b[0])
		}
		return float64(b[0]) / 255
	case gpu.Byte:
		return float64(int8(b[0]))
	case gpu.UnsignedShort:
		return float64(binary.LittleEndian.Uint16(b))
	case gpu.Short:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case gpu.Int:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case gpu.UnsignedInt:
		return float64(binary.LittleEndian.Uint32(b))
	case gpu.Float:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return 0
}

// encode writes one component of type typ to b.
func encode(b []byte, v float64, typ gpu.Enum, integer bool) {
	switch typ {
	case gpu.UnsignedByte:
		if integer {
			b[0] = byte(v)
		} else {
			b[0] = byte(math.Round(min(max(v, 0), 1) * 255))
		}
	case gpu.Byte:
		b[0] = byte(int8(v))
	case gpu.UnsignedShort:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case gpu.Short:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case gpu.Int:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	case gpu.UnsignedInt:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case gpu.Float:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	}
}

// load fills the surface from tightly packed client pixels. It reports
// false if the data is too short or the format is not understood.
func (s *surface) load(pixels []byte, format, typ gpu.Enum) bool {
	n, size := components(format), gpu.TypeSize(typ)
	if n == 0 || size == 0 || len(pixels) < s.width*s.height*n*size {
		return false
	}
	for i := range s.color {
		c := [4]float64{0, 0, 0, 1}
		for k := 0; k < n; k++ {
			c[k] = decode(pixels[(i*n+k)*size:], typ, s.integer)
		}
		s.color[i] = c
	}
	return true
}

// read copies the rectangle into dst as tightly packed client pixels.
// Pixels outside the surface are left untouched.
func (s *surface) read(x, y, width, height int, format, typ gpu.Enum, dst []byte) bool {
	n, size := components(format), gpu.TypeSize(typ)
	if n == 0 || size == 0 || len(dst) < width*height*n*size {
		return false
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			sx, sy := x+c, y+r
			if !s.contains(sx, sy) {
				continue
			}
			px := s.color[sy*s.width+sx]
			off := (r*width + c) * n * size
			for k := 0; k < n; k++ {
				encode(dst[off+k*size:], px[k], typ, s.integer)
			}
		}
	}
	return true
}
