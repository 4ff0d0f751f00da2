package common

import (
	"math"
	"unsafe"
)

// NormalizeAngle wraps an angle in degrees into the half-open range (-180, 180].
//
// Parameters:
//   - deg: the angle in degrees, any magnitude
//
// Returns:
//   - float64: the equivalent angle in (-180, 180]
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// ClampAbs clamps v into [-limit, +limit]. A non-positive limit disables clamping.
//
// Parameters:
//   - v: the value to clamp
//   - limit: the maximum magnitude
//
// Returns:
//   - float64: the clamped value
func ClampAbs(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Ortho creates an orthographic projection matrix with WebGPU clip space depth [0, 1].
// The matrix is stored in column-major order.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: x extents mapped to clip -1 and +1
//   - bottom, top: y extents mapped to clip -1 and +1
//   - near, far: z extents mapped to depth 0 and 1
func Ortho(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (far - near)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = -near / (far - near)
}

// PixelProjection maps pixel coordinates (origin top-left, y down) of a width x height
// surface onto clip space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - width, height: surface size in pixels
func PixelProjection(out []float32, width, height float32) {
	Ortho(out, 0, width, height, 0, -1, 1)
}
