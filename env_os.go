//go:build !js && !wasip1

package musictag

// fsSupported reports whether the execution environment allows
// filesystem access. Path-based loads and saves fail with
// ErrUnsupportedEnvironment when it is false.
const fsSupported = true
