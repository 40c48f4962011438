// Package scene holds the Scene aggregate (primitives, kd-tree, camera,
// spectrum) and the YAML scene loader, the core's boundary with the
// model-loader external collaborator. Grounded in the teacher's
// pkg/scene/scene.go (Scene-holds-everything-needed-to-render shape).
package scene

import (
	"github.com/avandyke/spectrace/pkg/core"
	"github.com/avandyke/spectrace/pkg/kdtree"
)

// Scene holds everything needed to render: the primitive list, its kd-tree
// index, the camera, and the spectrum being sampled.
type Scene struct {
	Primitives []core.Primitive
	Tree       *kdtree.Tree
	Camera     *Camera
	Spectrum   core.Spectrum
}

// New builds a Scene and its kd-tree from a finished primitive list, the
// shape the model loader external collaborator is expected to hand over
// (spec.md section 6).
func New(primitives []core.Primitive, camera *Camera, spectrum core.Spectrum) *Scene {
	return &Scene{
		Primitives: primitives,
		Tree:       kdtree.Build(primitives),
		Camera:     camera,
		Spectrum:   spectrum,
	}
}

// Intersect queries the scene's kd-tree for the nearest hit.
func (s *Scene) Intersect(ray core.Ray) (core.Intersection, bool) {
	return s.Tree.Traverse(ray)
}
