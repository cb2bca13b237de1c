//go:build js || wasip1

package musictag

// WebAssembly targets have no direct filesystem; only buffer-mode
// sessions work there.
const fsSupported = false
