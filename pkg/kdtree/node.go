// Package kdtree implements the surface-area-heuristic kd-tree that makes
// ray/scene intersection sub-linear in primitive count. The package shape
// (node struct, recursive build, front-to-back traversal dispatch) follows
// the teacher's pkg/core/bvh.go; the build algorithm itself is the SAH
// event-sweep described in spec.md section 4.1, which the teacher's fast
// median-split BVH does not implement.
package kdtree

import (
	"math"

	"github.com/avandyke/spectrace/pkg/core"
)

// SplitPlane identifies a candidate (or chosen) split: an axis and a
// position along it.
type SplitPlane struct {
	Dimension int
	Position  float32
}

// Node is a kd-tree node: either a leaf carrying a primitive list, or an
// internal node carrying a split plane and two children. Every node
// carries its own box so traversal can test the ray against node bounds
// without recomputing unions.
type Node struct {
	Box   core.Box
	Plane SplitPlane // valid only when Left/Right != nil

	Left, Right *Node
	Primitives  []core.Primitive // non-nil only for leaves
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// maxDepth bounds kd-tree recursion so that deep, pathological scenes
// cannot overflow the goroutine stack; a leaf is emitted once the cap is
// reached regardless of SAH termination (spec.md section 9, "Kd-tree
// recursion depth").
func maxDepth(primitiveCount int) int {
	depth := 8.0
	if primitiveCount > 1 {
		depth += 1.3 * math.Log2(float64(primitiveCount))
	}
	return int(depth)
}
