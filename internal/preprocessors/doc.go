// Package preprocessors provides implementations of the image and audio
// preprocessing ports. Each preprocessor turns encoded media bytes into the
// fixed-shape input tensor its model was exported with.
//
// Preprocessors are wired into the classifiers at startup.
package preprocessors
