// Package onnx provides ONNX Runtime bindings.
// It implements the driven.InferenceRuntime and driven.Session interfaces.
//
// Build requires:
//   - CGO enabled
//   - The ONNX Runtime shared library at runtime (libonnxruntime.so,
//     libonnxruntime.dylib or onnxruntime.dll), located through
//     runtime.library_path or the platform's default search path
//   - For CUDA, a GPU build of the library
package onnx
