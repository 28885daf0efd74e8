package phong

import (
	"encoding/binary"
	"math"
)

// Serialization helpers for uniform and attribute buffers. All GPU-visible
// data is little-endian float32, written at explicit byte offsets so each
// Pack method documents its layout in one place.

// putF32 writes v at buf[off:] and returns the next offset.
func putF32(buf []byte, off int, v float32) int {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	return off + 4
}

// putVec2 writes v at buf[off:] and returns the next offset.
func putVec2(buf []byte, off int, v Vec2) int {
	off = putF32(buf, off, v.X)
	return putF32(buf, off, v.Y)
}

// putVec3 writes v at buf[off:] and returns the next offset.
// No padding is emitted; callers place pad words explicitly.
func putVec3(buf []byte, off int, v Vec3) int {
	off = putF32(buf, off, v.X)
	off = putF32(buf, off, v.Y)
	return putF32(buf, off, v.Z)
}

// putVec4 writes v at buf[off:] and returns the next offset.
func putVec4(buf []byte, off int, v Vec4) int {
	off = putF32(buf, off, v.X)
	off = putF32(buf, off, v.Y)
	off = putF32(buf, off, v.Z)
	return putF32(buf, off, v.W)
}

// putMat4 writes m column-major at buf[off:] and returns the next offset.
func putMat4(buf []byte, off int, m Mat4) int {
	for _, v := range m {
		off = putF32(buf, off, v)
	}
	return off
}
