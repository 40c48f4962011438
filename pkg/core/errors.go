package core

import "github.com/pkg/errors"

// ErrEmptyScene is returned by a loader that successfully parses a scene
// file containing zero primitives. Traversal of an empty scene is not an
// error in itself (kd-tree traverse always returns no hit) but a loader
// producing nothing is very likely a misconfiguration.
var ErrEmptyScene = errors.New("scene contains no primitives")

// SceneLoadError wraps a fatal failure to parse or construct a scene. It
// is the one error kind this package surfaces to the top level: the
// caller (cmd/pathtracer) should exit with status 1 on SceneLoadError.
type SceneLoadError struct {
	Path  string
	Cause error
}

func (e *SceneLoadError) Error() string {
	return errors.Wrapf(e.Cause, "load scene %q", e.Path).Error()
}

func (e *SceneLoadError) Unwrap() error { return e.Cause }

// NewSceneLoadError wraps cause as a fatal scene load failure for path.
func NewSceneLoadError(path string, cause error) error {
	return &SceneLoadError{Path: path, Cause: cause}
}
