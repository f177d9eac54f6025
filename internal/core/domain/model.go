package domain

import "time"

// Device is the compute device a model runs on.
type Device string

// Devices.
const (
	// DeviceAuto prefers an accelerator when present, else the CPU.
	DeviceAuto Device = "auto"

	// DeviceCPU runs inference on the CPU.
	DeviceCPU Device = "cpu"

	// DeviceCUDA runs inference on an NVIDIA GPU.
	DeviceCUDA Device = "cuda"
)

// IsValid returns true if the device is recognised.
func (d Device) IsValid() bool {
	switch d {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Device) String() string {
	return string(d)
}

// LoadState is the lifecycle state of a model handle.
type LoadState int

// Load states.
const (
	LoadStateUnloaded LoadState = iota
	LoadStateLoading
	LoadStateReady
	LoadStateFailed
)

// String returns the string representation.
func (s LoadState) String() string {
	switch s {
	case LoadStateUnloaded:
		return "unloaded"
	case LoadStateLoading:
		return "loading"
	case LoadStateReady:
		return "ready"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON output.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Artifact locates one model file.
// File is relative to <assets>/<modality>_models/ unless absolute.
// When Repo is set and File is missing locally, the file is fetched
// from the model hub as <repo>/resolve/main/<RemoteFile>.
type Artifact struct {
	Modality   Modality
	File       string
	Repo       string
	RemoteFile string
}

// IsRemote returns true if the artifact can be fetched from the hub.
func (a Artifact) IsRemote() bool {
	return a.Repo != ""
}

// Remote returns the file name inside the hub repository.
func (a Artifact) Remote() string {
	if a.RemoteFile != "" {
		return a.RemoteFile
	}
	return a.File
}

// ModelSpec describes a pretrained model and how to feed it.
type ModelSpec struct {
	Modality Modality

	// Name is the model identifier shown in status output.
	Name string

	// Weights locates the exported graph.
	Weights Artifact

	// Tokenizer locates the tokenizer definition (text models only).
	Tokenizer *Artifact

	// Inputs and Outputs are the graph's tensor names, in feed order.
	Inputs  []string
	Outputs []string
}

// ModelStatus is a snapshot of a model handle.
type ModelStatus struct {
	Modality  Modality  `json:"modality"`
	Name      string    `json:"name"`
	State     LoadState `json:"state"`
	Device    Device    `json:"device,omitempty"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
}

// IsReady returns true if the model is loaded.
func (s ModelStatus) IsReady() bool {
	return s.State == LoadStateReady
}
