// Package services implements the driving ports: the modality classifiers,
// the classifier registry, evidence fusion, multimodal analysis and settings.
//
// Classifiers own a ModelHandle each. Handles load lazily, retry failed loads
// on the next call and never let a panic or load error escape as anything
// other than a *domain.ClassificationError.
//
// Services depend only on domain and the driven ports; concrete adapters are
// injected by the composition root.
package services
