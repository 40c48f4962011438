package scene

import (
	"testing"

	"github.com/avandyke/spectrace/pkg/core"
	"github.com/avandyke/spectrace/pkg/geometry"
	"github.com/avandyke/spectrace/pkg/material"
)

func TestSceneIntersectFindsNearestPrimitive(t *testing.T) {
	mat := material.NewDiffuse([]float32{0.5}, 0.9)
	near := geometry.NewTriangle(
		core.Vec3{X: -1, Y: -1, Z: -1}, core.Vec3{X: 1, Y: -1, Z: -1}, core.Vec3{X: 0, Y: 1, Z: -1}, mat,
	)
	far := geometry.NewTriangle(
		core.Vec3{X: -1, Y: -1, Z: -5}, core.Vec3{X: 1, Y: -1, Z: -5}, core.Vec3{X: 0, Y: 1, Z: -5}, mat,
	)
	cam := NewCamera(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: -1}, core.Vec3{X: 0, Y: 1, Z: 0}, 1, 0, 0, 1, 1)
	s := New([]core.Primitive{near, far}, cam, core.NewUniformSpectrum(4, 400, 700))

	ray := core.NewRay(core.Vec3{X: 0, Y: -0.3, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1})
	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Primitive != core.Primitive(near) {
		t.Error("expected the nearer triangle to be reported, not the farther one")
	}
}

func TestSceneIntersectMissesEmptyScene(t *testing.T) {
	cam := NewCamera(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: -1}, core.Vec3{X: 0, Y: 1, Z: 0}, 1, 0, 0, 1, 1)
	s := New(nil, cam, core.NewUniformSpectrum(4, 400, 700))
	if _, ok := s.Intersect(core.NewRay(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: -1})); ok {
		t.Error("expected no hit in an empty scene")
	}
}
