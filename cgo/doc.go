// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - onnx: ONNX Runtime bindings for model inference
package cgo
