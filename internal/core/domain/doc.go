// Package domain defines the core business entities for hoaxlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ClassificationResult: A (label, confidence) pair from one classifier
//   - ClassificationError: A typed failure at the classifier boundary
//   - EvidenceItem: One modality's result inside a multimodal submission
//   - FusionReport: The fused verdict over all evidence items
//   - LabelSet: The fixed two-class index/name table of a classifier head
//   - Tensor: A model-ready numeric array
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
