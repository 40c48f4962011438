package kdtree

import "github.com/avandyke/spectrace/pkg/core"

// Traverse returns the nearest intersection among all indexed primitives,
// or ok=false if the ray hits nothing.
func (t *Tree) Traverse(ray core.Ray) (core.Intersection, bool) {
	if t.root == nil {
		return core.Intersection{}, false
	}
	if !t.root.Box.Hit(ray, 0, inf32) {
		return core.Intersection{}, false
	}
	return traverse(t.root, ray, 0, inf32)
}

const inf32 = 1e30

// traverse implements standard recursive kd-traversal: at an internal
// node, visit the child the ray direction sign says is nearer first, and
// stop as soon as a hit inside a leaf falls within the node's own slab
// (spec.md section 4.1, "Traversal").
func traverse(n *Node, ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	if n.IsLeaf() {
		return intersectLeaf(n.Primitives, ray, tMin, tMax)
	}

	d := n.Plane.Dimension
	pos := n.Plane.Position

	first, second := n.Left, n.Right
	if ray.Direction.Component(d) < 0 {
		first, second = n.Right, n.Left
	}

	origin := ray.Origin.Component(d)
	dir := ray.Direction.Component(d)

	var tSplit float32
	if dir == 0 {
		// Ray never crosses the plane: stay on the side the origin is on.
		if origin < pos {
			tSplit = tMax
		} else {
			tSplit = tMin
		}
	} else {
		tSplit = (pos - origin) / dir
	}

	if tSplit <= tMin {
		return traverseChild(second, ray, tMin, tMax)
	}
	if tSplit >= tMax {
		return traverseChild(first, ray, tMin, tMax)
	}

	if hit, ok := traverseChild(first, ray, tMin, tSplit); ok {
		return hit, true
	}
	return traverseChild(second, ray, tSplit, tMax)
}

func traverseChild(n *Node, ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	if n == nil || !n.Box.Hit(ray, tMin, tMax) {
		return core.Intersection{}, false
	}
	return traverse(n, ray, tMin, tMax)
}

func intersectLeaf(primitives []core.Primitive, ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	var best core.Intersection
	found := false
	closest := tMax
	for _, p := range primitives {
		if hit, ok := p.Intersect(ray, tMin, closest); ok {
			best = hit
			closest = hit.Distance
			found = true
		}
	}
	return best, found
}
