// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - InferenceRuntime: Opens model sessions on a compute device (ONNX Runtime)
//   - Session: Runs one forward pass over prepared tensors
//   - ModelResolver: Locates model artifacts, downloading them when configured
//   - TokenizerLoader: Loads the text model's tokenizer definition
//   - ImagePreprocessor: Turns image bytes into the image model's input tensor
//   - AudioPreprocessor: Turns audio bytes into the audio model's input tensor
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImageInspector: Adds informational attributes (perceptual hash, metadata)
//     to image evidence. Without it, image evidence carries no attributes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or preprocessor package
package driven
