package scene

import "github.com/avandyke/spectrace/pkg/core"

var (
	upAxis          = core.Vec3{X: 0, Y: 1, Z: 0}
	forwardReversed = core.Vec3{X: 0, Y: 0, Z: -1}
)

// Camera is a pinhole camera. Grounded in the teacher's
// pkg/renderer/camera.go (camera owns ray generation, a GetRay-style
// entry point) but the ray formula itself is
// original_source/.../TraceTask.cpp's primary-ray generation: a pair of
// RotateFromToAxis calls that first aim the image plane's forward axis at
// the camera's view direction around its up axis, then aim the up axis at
// the camera's actual up around the view direction.
type Camera struct {
	Origin core.Vec3 // p
	Dir    core.Vec3 // n, unit forward direction
	Up     core.Vec3 // up, unit

	Focal            float32 // f
	CenterX, CenterY float32 // icx, icy
	Width, Height    float32 // iw, ih
}

// NewCamera constructs a camera, normalizing direction and up.
func NewCamera(origin, dir, up core.Vec3, focal, centerX, centerY, width, height float32) *Camera {
	return &Camera{
		Origin:  origin,
		Dir:     dir.Normalize(),
		Up:      up.Normalize(),
		Focal:   focal,
		CenterX: centerX,
		CenterY: centerY,
		Width:   width,
		Height:  height,
	}
}

// Ray generates the primary ray for pixel (row, col) out of (height, width)
// pixels, jittered within the pixel footprint by (xi1, xi2) drawn uniform
// on [0, 1).
func (c *Camera) Ray(row, col, imageWidth, imageHeight int, xi1, xi2 float32) core.Ray {
	pixelWidth := c.Width / float32(imageWidth)
	pixelHeight := c.Height / float32(imageHeight)
	left := c.CenterX - c.Width/2
	top := c.CenterY + c.Height/2

	u := left + (float32(col)+xi1)*pixelWidth
	v := top - (float32(row)+xi2)*pixelHeight

	dir := core.Vec3{X: u, Y: v, Z: -c.Focal}.Normalize()
	dir = dir.RotateFromToAxis(forwardReversed, c.Dir, c.Up)
	dir = dir.RotateFromToAxis(upAxis, c.Up, c.Dir)

	return core.NewRay(c.Origin, dir)
}
