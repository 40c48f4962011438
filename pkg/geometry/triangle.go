// Package geometry implements the concrete core.Primitive types consumed
// by the kd-tree and path tracer: triangles and planar meshes of
// triangles (with holes). Grounded in the teacher's pkg/geometry/
// triangle.go (field layout, cached normal/box) and
// original_source/.../PlanarMeshObject.cpp (outline + hole fan
// triangulation, hole-occludes-outline intersection rule).
package geometry

import (
	"github.com/avandyke/spectrace/pkg/core"
)

// Triangle is a single triangle primitive.
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3
	box        core.Box
	material   core.Material
}

// NewTriangle constructs a triangle, precomputing its normal and box.
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, material: material}
	t.normal = computeNormal(v0, v1, v2)
	t.box = core.BoxFromPoints(v0, v1, v2)
	return t
}

func computeNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Box implements core.Primitive.
func (t *Triangle) Box() core.Box { return t.box }

// Material implements core.Primitive.
func (t *Triangle) Material() core.Material { return t.material }

// Clip implements core.Primitive: the tight box of the portion of the
// triangle inside b, computed by Sutherland-Hodgman polygon clipping
// against each of the box's six half-spaces in turn.
func (t *Triangle) Clip(b core.Box) core.Box {
	poly := []core.Vec3{t.V0, t.V1, t.V2}
	for axis := 0; axis < 3; axis++ {
		poly = clipBelow(poly, axis, b.Max.Component(axis))
		if len(poly) == 0 {
			return core.EmptyBox()
		}
		poly = clipAbove(poly, axis, b.Min.Component(axis))
		if len(poly) == 0 {
			return core.EmptyBox()
		}
	}
	if len(poly) == 0 {
		return core.EmptyBox()
	}
	return core.BoxFromPoints(poly...)
}

// clipBelow keeps the portion of the polygon with component(axis) <= limit.
func clipBelow(poly []core.Vec3, axis int, limit float32) []core.Vec3 {
	return clipHalfSpace(poly, axis, limit, false)
}

// clipAbove keeps the portion of the polygon with component(axis) >= limit.
func clipAbove(poly []core.Vec3, axis int, limit float32) []core.Vec3 {
	return clipHalfSpace(poly, axis, limit, true)
}

func clipHalfSpace(poly []core.Vec3, axis int, limit float32, keepAbove bool) []core.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	inside := func(p core.Vec3) bool {
		v := p.Component(axis)
		if keepAbove {
			return v >= limit
		}
		return v <= limit
	}

	var out []core.Vec3
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := inside(cur)
		prevIn := inside(prev)

		if curIn != prevIn {
			t := (limit - prev.Component(axis)) / (cur.Component(axis) - prev.Component(axis))
			out = append(out, lerp(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

func lerp(a, b core.Vec3, t float32) core.Vec3 {
	return a.Add(b.Subtract(a).Multiply(t))
}

// Intersect implements core.Primitive using the Moller-Trumbore-style
// plane+barycentric test. The denominator det = edge1.Dot(direction x
// edge2) equals minus the full dot product of the (unnormalized) face
// normal edge1 x edge2 with the direction, so all three components take
// part; spec.md section 9's "Open questions" notes the original source computed
// this as n.x*d.x + n.y*d.y + n.y*d.y (y duplicated, z missing), which is
// a bug this implementation does not reproduce.
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -core.Epsilon && det < core.Epsilon {
		// Ray direction parallel to the triangle's plane: no intersection.
		return core.Intersection{}, false
	}
	invDet := 1 / det

	tvec := ray.Origin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return core.Intersection{}, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return core.Intersection{}, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist < tMin || dist > tMax {
		return core.Intersection{}, false
	}

	return core.Intersection{Point: ray.At(dist), Distance: dist, Primitive: t}, true
}

// Normal returns the triangle's precomputed face normal.
func (t *Triangle) Normal() core.Vec3 { return t.normal }
