package geometry

import "github.com/avandyke/spectrace/pkg/core"

// TriangleMesh is a single planar polygon (the "outline"), optionally
// punctured by hole polygons, both triangulated as a fan from their first
// vertex. Grounded in original_source/.../PlanarMeshObject.cpp.
type TriangleMesh struct {
	material core.Material
	box      core.Box

	outline []*Triangle
	holes   [][]*Triangle
}

// NewTriangleMesh builds a planar mesh from an outline polygon (>= 3
// vertices, assumed coplanar and wound consistently) and zero or more hole
// polygons. Hole vertices are wound clockwise relative to the outline in
// the source format, so their triangle winding is reversed here to make
// their normals agree with the outline's (original_source's comment: "2nd
// and 3rd vertices for every triangle are swapped").
func NewTriangleMesh(outline []core.Vec3, holes [][]core.Vec3, material core.Material) *TriangleMesh {
	m := &TriangleMesh{material: material, box: core.EmptyBox()}

	m.outline = fanTriangulate(outline, material, false)
	for _, hole := range holes {
		m.holes = append(m.holes, fanTriangulate(hole, material, true))
	}

	for _, tri := range m.outline {
		m.box = m.box.Union(tri.Box())
	}
	return m
}

func fanTriangulate(poly []core.Vec3, material core.Material, reversed bool) []*Triangle {
	if len(poly) < 3 {
		return nil
	}
	v1 := poly[0]
	tris := make([]*Triangle, 0, len(poly)-2)
	for i := 0; i < len(poly)-2; i++ {
		v2 := poly[i+1]
		v3 := poly[i+2]
		if reversed {
			tris = append(tris, NewTriangle(v1, v3, v2, material))
		} else {
			tris = append(tris, NewTriangle(v1, v2, v3, material))
		}
	}
	return tris
}

// Box implements core.Primitive.
func (m *TriangleMesh) Box() core.Box { return m.box }

// Material implements core.Primitive.
func (m *TriangleMesh) Material() core.Material { return m.material }

// Clip implements core.Primitive: the union of the outline fan triangles'
// clips. Holes only remove intersectable area, never extend the bounding
// box, so they do not contribute here.
func (m *TriangleMesh) Clip(b core.Box) core.Box {
	result := core.EmptyBox()
	for _, tri := range m.outline {
		c := tri.Clip(b)
		if !c.IsEmpty() {
			result = result.Union(c)
		}
	}
	return result
}

// Normal returns the mesh's face normal. The outline is assumed planar and
// consistently wound, so any outline triangle's normal applies to the
// whole mesh.
func (m *TriangleMesh) Normal() core.Vec3 {
	if len(m.outline) == 0 {
		return core.Vec3{}
	}
	return m.outline[0].Normal()
}

// Intersect implements core.Primitive. A hit inside any hole polygon
// blocks the mesh entirely for this ray: spec.md section 9 resolves the
// original source's ambiguity here by treating a hole hit as "no hit on
// this primitive" rather than falling through to test the outline.
func (m *TriangleMesh) Intersect(ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	for _, hole := range m.holes {
		for _, tri := range hole {
			if _, ok := tri.Intersect(ray, tMin, tMax); ok {
				return core.Intersection{}, false
			}
		}
	}

	for _, tri := range m.outline {
		if hit, ok := tri.Intersect(ray, tMin, tMax); ok {
			hit.Primitive = m
			return hit, true
		}
	}
	return core.Intersection{}, false
}
