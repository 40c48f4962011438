package core

import "math"

// Epsilon is the tolerance used throughout the tracer for plane-equality
// tests, degenerate-box detection and self-intersection guarding.
const Epsilon = 1e-6

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// EmptyBox returns a box with no volume, seeded so that Union with any
// real box yields that box unchanged. Seeding the max with the smallest
// *positive* float (as the original source mistakenly did with
// numeric_limits<float>::min()) would fail to be overridden by a box
// with negative coordinates; the correct seed is +/-Inf.
func EmptyBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// BoxFromPoints returns the tight box containing all given points.
func BoxFromPoints(points ...Vec3) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.ExpandToContain(p)
	}
	return b
}

// ExpandToContain returns a box containing both the receiver and p.
func (b Box) ExpandToContain(p Vec3) Box {
	return Box{
		Min: Vec3{min32(b.Min.X, p.X), min32(b.Min.Y, p.Y), min32(b.Min.Z, p.Z)},
		Max: Vec3{max32(b.Max.X, p.X), max32(b.Max.Y, p.Y), max32(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec3{min32(b.Min.X, o.Min.X), min32(b.Min.Y, o.Min.Y), min32(b.Min.Z, o.Min.Z)},
		Max: Vec3{max32(b.Max.X, o.Max.X), max32(b.Max.Y, o.Max.Y), max32(b.Max.Z, o.Max.Z)},
	}
}

// Intersect returns the overlap of b and o. The result may be empty
// (Min[d] > Max[d] for some d) if the boxes do not overlap.
func (b Box) Intersect(o Box) Box {
	return Box{
		Min: Vec3{max32(b.Min.X, o.Min.X), max32(b.Min.Y, o.Min.Y), max32(b.Min.Z, o.Min.Z)},
		Max: Vec3{min32(b.Max.X, o.Max.X), min32(b.Max.Y, o.Max.Y), min32(b.Max.Z, o.Max.Z)},
	}
}

// IsEmpty reports whether the box has negative extent (Min > Max) on any
// axis, beyond the epsilon tolerance. A box with zero extent on an axis
// (a planar box) is not empty.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X+Epsilon || b.Min.Y > b.Max.Y+Epsilon || b.Min.Z > b.Max.Z+Epsilon
}

// Size returns the per-axis extent (Max - Min).
func (b Box) Size() Vec3 { return b.Max.Subtract(b.Min) }

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// SurfaceArea returns the total surface area of the box, 0 for an empty box.
func (b Box) SurfaceArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Planar reports whether the box has near-zero extent along dimension d.
func (b Box) Planar(d int) bool {
	return b.Max.Component(d)-b.Min.Component(d) < Epsilon
}

// LongestAxis returns the axis (0, 1 or 2) with the greatest extent.
func (b Box) LongestAxis() int {
	s := b.Size()
	if s.X >= s.Y && s.X >= s.Z {
		return 0
	}
	if s.Y >= s.Z {
		return 1
	}
	return 2
}

// Hit tests ray/box intersection using the slab method, returning whether
// the ray's parameter interval [tMin, tMax] overlaps the box.
func (b Box) Hit(ray Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		lo := b.Min.Component(axis)
		hi := b.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		dir := ray.Direction.Component(axis)

		if float32(math.Abs(float64(dir))) < 1e-8 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invD := 1 / dir
		t1 := (lo - origin) * invD
		t2 := (hi - origin) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max32(tMin, t1)
		tMax = min32(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
