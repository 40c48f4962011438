package kdtree

import "github.com/avandyke/spectrace/pkg/core"

// SAH cost-model constants from spec.md section 4.1.
const (
	traversalCost    = 0.3 // Ct
	intersectionCost = 1.0 // Ci
)

// Tree is the constructed SAH kd-tree over a fixed primitive list.
type Tree struct {
	root *Node
}

type clippedBox struct {
	primitive core.Primitive
	box       core.Box
}

// Build constructs a kd-tree over primitives. The primitive slice is not
// retained by reference into the caller's backing array beyond this call
// (a defensive copy is taken), matching the teacher's NewBVH's "own copy
// for thread safety" comment.
func Build(primitives []core.Primitive) *Tree {
	if len(primitives) == 0 {
		return &Tree{root: &Node{Box: core.EmptyBox(), Primitives: nil}}
	}

	owned := make([]core.Primitive, len(primitives))
	copy(owned, primitives)

	rootBox := core.EmptyBox()
	for _, p := range owned {
		rootBox = rootBox.Union(p.Box())
	}

	return &Tree{root: build(owned, rootBox, 0, maxDepth(len(owned)))}
}

func build(primitives []core.Primitive, box core.Box, depth, depthLimit int) *Node {
	if len(primitives) == 0 {
		return &Node{Box: box}
	}
	if depth >= depthLimit {
		return &Node{Box: box, Primitives: primitives}
	}

	clipped := make([]clippedBox, len(primitives))
	for i, p := range primitives {
		clipped[i] = clippedBox{primitive: p, box: p.Clip(box)}
	}

	bestCost := float32(-1)
	var bestPlane SplitPlane
	bestSide := true // true: planars go left
	found := false

	for d := 0; d < 3; d++ {
		cost, plane, side, ok := bestSplitForDimension(clipped, box, d)
		if ok && (!found || cost < bestCost) {
			bestCost = cost
			bestPlane = plane
			bestSide = side
			found = true
		}
	}

	if !found || bestCost > intersectionCost*float32(len(primitives)) {
		return &Node{Box: box, Primitives: primitives}
	}

	left, right := partition(clipped, bestPlane, bestSide)
	if len(left) == 0 || len(right) == 0 {
		// Degenerate split (every primitive landed on one side): stop
		// rather than recurse forever on an unchanged primitive set.
		return &Node{Box: box, Primitives: primitives}
	}

	leftBox := box
	leftBox.Max = leftBox.Max.WithComponent(bestPlane.Dimension, bestPlane.Position)
	rightBox := box
	rightBox.Min = rightBox.Min.WithComponent(bestPlane.Dimension, bestPlane.Position)

	return &Node{
		Box:   box,
		Plane: bestPlane,
		Left:  build(left, leftBox, depth+1, depthLimit),
		Right: build(right, rightBox, depth+1, depthLimit),
	}
}

// bestSplitForDimension sweeps the events for dimension d and returns the
// cheapest interior split plane found, per spec.md section 4.1 steps 2-5.
func bestSplitForDimension(clipped []clippedBox, box core.Box, d int) (cost float32, plane SplitPlane, side bool, ok bool) {
	events := eventsForDimension(clipped, d)
	if len(events) == 0 {
		return 0, SplitPlane{}, true, false
	}

	nodeArea := box.SurfaceArea()
	lo := box.Min.Component(d)
	hi := box.Max.Component(d)

	total := len(clipped)
	nL, nP, nR := 0, 0, total

	bestCost := float32(-1)
	found := false
	var bestPlane SplitPlane
	bestSide := true

	i := 0
	for i < len(events) {
		p := events[i].position

		pEnd, pPlanar, pStart := 0, 0, 0
		for i < len(events) && events[i].position == p && events[i].kind == eventEnd {
			pEnd++
			i++
		}
		for i < len(events) && events[i].position == p && events[i].kind == eventPlanar {
			pPlanar++
			i++
		}
		for i < len(events) && events[i].position == p && events[i].kind == eventStart {
			pStart++
			i++
		}

		nP += pPlanar
		nR -= pPlanar
		nR -= pEnd

		if p > lo+core.Epsilon && p < hi-core.Epsilon {
			leftBox := box
			leftBox.Max = leftBox.Max.WithComponent(d, p)
			rightBox := box
			rightBox.Min = rightBox.Min.WithComponent(d, p)

			pL := float32(0)
			pR := float32(0)
			if nodeArea > 0 {
				pL = leftBox.SurfaceArea() / nodeArea
				pR = rightBox.SurfaceArea() / nodeArea
			}

			costLeft, kLeftEmpty := sahCost(pL, pR, nL+nP, nR)
			costRight, kRightEmpty := sahCost(pL, pR, nL, nR+nP)
			_ = kLeftEmpty
			_ = kRightEmpty

			candidateCost := costLeft
			candidateSide := true
			if costRight < candidateCost {
				candidateCost = costRight
				candidateSide = false
			}

			if !found || candidateCost < bestCost {
				bestCost = candidateCost
				bestPlane = SplitPlane{Dimension: d, Position: p}
				bestSide = candidateSide
				found = true
			}
		}

		nL += pStart
		nL += pPlanar
		nP -= pPlanar
	}

	return bestCost, bestPlane, bestSide, found
}

// sahCost evaluates the cost formula from spec.md section 4.1 step 5 for
// one side-assignment of the planar primitives.
func sahCost(pL, pR float32, nLeftTotal, nRightTotal int) (float32, bool) {
	k := float32(1.0)
	empty := nLeftTotal == 0 || nRightTotal == 0
	if empty {
		k = 0.8
	}
	return k * (traversalCost + intersectionCost*(pL*float32(nLeftTotal)+pR*float32(nRightTotal))), empty
}

// partition assigns each primitive to left, right or both sides per
// spec.md section 4.1 step 7.
func partition(clipped []clippedBox, plane SplitPlane, planarGoesLeft bool) (left, right []core.Primitive) {
	d := plane.Dimension
	pos := plane.Position

	for _, c := range clipped {
		if c.box.IsEmpty() {
			continue
		}
		lo := c.box.Min.Component(d)
		hi := c.box.Max.Component(d)

		if c.box.Planar(d) && abs32(lo-pos) < core.Epsilon {
			if planarGoesLeft {
				left = append(left, c.primitive)
			} else {
				right = append(right, c.primitive)
			}
			continue
		}

		addedLeft, addedRight := false, false
		if lo < pos {
			left = append(left, c.primitive)
			addedLeft = true
		}
		if hi > pos {
			right = append(right, c.primitive)
			addedRight = true
		}
		if !addedLeft && !addedRight {
			// Box touches the plane from one side only (lo == hi == pos
			// for a non-planar-dimension degenerate clip); fall back to
			// the recorded side so the primitive is never dropped.
			if planarGoesLeft {
				left = append(left, c.primitive)
			} else {
				right = append(right, c.primitive)
			}
		}
	}
	return left, right
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
