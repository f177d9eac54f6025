package domain

import "fmt"

// Tensor is a dense, row-major array ready to feed a model input.
// Exactly one of Float32 or Int64 holds the data.
type Tensor struct {
	Name    string
	Shape   []int64
	Float32 []float32
	Int64   []int64
}

// NewFloatTensor builds a float32 tensor.
func NewFloatTensor(name string, data []float32, shape ...int64) Tensor {
	return Tensor{Name: name, Shape: shape, Float32: data}
}

// NewIntTensor builds an int64 tensor.
func NewIntTensor(name string, data []int64, shape ...int64) Tensor {
	return Tensor{Name: name, Shape: shape, Int64: data}
}

// Elements returns the element count implied by the shape.
func (t Tensor) Elements() int64 {
	if len(t.Shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// IsFloat returns true for float32 tensors.
func (t Tensor) IsFloat() bool {
	return t.Float32 != nil
}

// Validate checks that exactly one data slice is set and matches the shape.
func (t Tensor) Validate() error {
	if (t.Float32 == nil) == (t.Int64 == nil) {
		return fmt.Errorf("tensor %q: exactly one of float32 or int64 data must be set", t.Name)
	}
	for _, d := range t.Shape {
		if d <= 0 {
			return fmt.Errorf("tensor %q: invalid dimension %d in shape %v", t.Name, d, t.Shape)
		}
	}
	n := int64(len(t.Float32) + len(t.Int64))
	if n != t.Elements() {
		return fmt.Errorf("tensor %q: %d elements do not match shape %v", t.Name, n, t.Shape)
	}
	return nil
}

// Encoding is a tokenizer's output for one sequence, special tokens included.
type Encoding struct {
	IDs           []int64
	TypeIDs       []int64
	AttentionMask []int64
}

// Len returns the sequence length.
func (e Encoding) Len() int {
	return len(e.IDs)
}
