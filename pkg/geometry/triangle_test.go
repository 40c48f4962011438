package geometry

import (
	"testing"

	"github.com/avandyke/spectrace/pkg/core"
)

func flatTriangle() *Triangle {
	return NewTriangle(
		core.Vec3{X: -1, Y: -1, Z: 0},
		core.Vec3{X: 1, Y: -1, Z: 0},
		core.Vec3{X: 0, Y: 1, Z: 0},
		nil,
	)
}

func TestIntersectParallelRayMisses(t *testing.T) {
	tri := flatTriangle()
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: 1}, Direction: core.Vec3{X: 1, Y: 0, Z: 0}}
	if _, ok := tri.Intersect(ray, 0, 1e9); ok {
		t.Error("ray parallel to triangle plane should not intersect")
	}
}

func TestIntersectThroughCenter(t *testing.T) {
	tri := flatTriangle()
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: -0.3, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}
	hit, ok := tri.Intersect(ray, 0, 1e9)
	if !ok {
		t.Fatal("expected a hit through the triangle's interior")
	}
	if hit.Distance < 4.9 || hit.Distance > 5.1 {
		t.Errorf("expected hit distance ~5, got %g", hit.Distance)
	}
}

func TestIntersectOutsideEdgeMisses(t *testing.T) {
	tri := flatTriangle()
	ray := core.Ray{Origin: core.Vec3{X: 5, Y: 5, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}
	if _, ok := tri.Intersect(ray, 0, 1e9); ok {
		t.Error("ray outside the triangle's footprint should miss")
	}
}

func TestIntersectOriginOnSurfaceOffsetGuardsReHit(t *testing.T) {
	// A bounce spawned exactly on the surface and nudged forward along its
	// own direction by Ray.Offset must not immediately re-hit the same
	// triangle (spec.md section 8, "self-intersection guard").
	origin := core.Vec3{X: 0, Y: -0.3, Z: 0}
	ray := core.Ray{Origin: origin, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}.Offset()

	tri := flatTriangle()
	if _, ok := tri.Intersect(ray, 0, 1e9); ok {
		t.Error("offset ray should not immediately re-hit its own origin surface")
	}
}

func TestBoxMatchesVertexExtents(t *testing.T) {
	tri := flatTriangle()
	b := tri.Box()
	want := core.Box{Min: core.Vec3{X: -1, Y: -1, Z: 0}, Max: core.Vec3{X: 1, Y: 1, Z: 0}}
	if b != want {
		t.Errorf("Box() = %v, want %v", b, want)
	}
}

func TestClipIsSubsetOfArgument(t *testing.T) {
	tri := flatTriangle()
	clipBox := core.Box{Min: core.Vec3{X: -0.5, Y: -0.5, Z: -1}, Max: core.Vec3{X: 0.5, Y: 0.5, Z: 1}}
	clipped := tri.Clip(clipBox)

	if clipped.IsEmpty() {
		t.Fatal("expected a non-empty clip for an overlapping box")
	}
	if clipped.Min.X < clipBox.Min.X-core.Epsilon || clipped.Max.X > clipBox.Max.X+core.Epsilon {
		t.Errorf("clip %v not contained in box %v on x", clipped, clipBox)
	}
	if clipped.Min.Y < clipBox.Min.Y-core.Epsilon || clipped.Max.Y > clipBox.Max.Y+core.Epsilon {
		t.Errorf("clip %v not contained in box %v on y", clipped, clipBox)
	}
}

func TestClipNonTouchingIsEmpty(t *testing.T) {
	tri := flatTriangle()
	farBox := core.Box{Min: core.Vec3{X: 100, Y: 100, Z: 100}, Max: core.Vec3{X: 101, Y: 101, Z: 101}}
	if !tri.Clip(farBox).IsEmpty() {
		t.Error("clip against a non-overlapping box should be empty")
	}
}
