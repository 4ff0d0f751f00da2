// Package layout distributes N items evenly over a sphere using the golden-angle (Fibonacci) spiral.
package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// PhiMin and PhiMax bound the polar band items are remapped into so nothing sits on a pole.
	PhiMin = 15.0
	PhiMax = 165.0

	// PoleBand is the distance from either pole inside which an item counts as a pole item.
	PoleBand = 30.0
)

// goldenAngle is 2π/φ in radians, the azimuth step between consecutive items.
var goldenAngle = 2 * math.Pi / ((1 + math.Sqrt(5)) / 2)

// SphericalPosition is a layout angle pair on a sphere of fixed radius.
type SphericalPosition struct {
	// Theta is the azimuth in degrees, [0, 360).
	Theta float64
	// Phi is the polar angle in degrees, remapped into [PhiMin, PhiMax].
	Phi float64
	// Radius is the sphere radius shared by every item of a layout.
	Radius float64
}

// Placement pairs an item's spherical position with its unrotated Cartesian base point.
type Placement struct {
	Index int
	SphericalPosition
	// Base is the sphere-local point. It is never mutated after Compute returns.
	Base mgl64.Vec3
}

// Pole reports whether the placement started near a pole of the layout.
func (p Placement) Pole() bool {
	return IsPole(p.Phi)
}

// IsPole reports whether a polar angle lies within PoleBand degrees of either pole.
//
// Parameters:
//   - phi: polar angle in degrees
//
// Returns:
//   - bool: true for phi < 30 or phi > 150
func IsPole(phi float64) bool {
	return phi < PoleBand || phi > 180-PoleBand
}

// Compute places count items on a sphere of the given radius.
// The result depends only on its arguments; a count of zero yields nil.
//
// Parameters:
//   - count: number of items
//   - radius: sphere radius
//
// Returns:
//   - []Placement: one placement per item, in index order
func Compute(count int, radius float64) []Placement {
	if count <= 0 {
		return nil
	}

	out := make([]Placement, count)
	n := float64(count)
	for i := range out {
		t := float64(i) / n
		phi := mgl64.RadToDeg(math.Acos(1 - 2*t))
		theta := math.Mod(mgl64.RadToDeg(float64(i)*goldenAngle), 360)

		pos := SphericalPosition{
			Theta:  theta,
			Phi:    PhiMin + (phi/180)*(PhiMax-PhiMin),
			Radius: radius,
		}
		out[i] = Placement{Index: i, SphericalPosition: pos, Base: pos.Cartesian()}
	}
	return out
}

// Cartesian converts the spherical position into sphere-local x, y, z with y as the polar axis.
//
// Returns:
//   - mgl64.Vec3: the Cartesian point
func (s SphericalPosition) Cartesian() mgl64.Vec3 {
	th := mgl64.DegToRad(s.Theta)
	ph := mgl64.DegToRad(s.Phi)
	sinPh := math.Sin(ph)
	return mgl64.Vec3{
		s.Radius * sinPh * math.Cos(th),
		s.Radius * math.Cos(ph),
		s.Radius * sinPh * math.Sin(th),
	}
}
