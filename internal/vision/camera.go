package vision

import (
	"context"
	"errors"
)

// ErrNoCamera is returned when no capture device is available.
var ErrNoCamera = errors.New("no camera available")

// Camera opens a capture device and grabs single frames. The runtime owns
// the lifecycle; the dialogue engine only opens, captures, and closes.
type Camera interface {
	Open(ctx context.Context) error
	// Capture returns one frame, base64-encoded.
	Capture(ctx context.Context) (string, error)
	Close() error
}

// MockCamera returns a fixed frame. Used in tests and demo deployments
// where the browser front-end does the real capture.
type MockCamera struct {
	Frame   string
	OpenErr error
	opened  bool
}

func (m *MockCamera) Open(_ context.Context) error {
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.opened = true
	return nil
}

func (m *MockCamera) Capture(_ context.Context) (string, error) {
	if !m.opened {
		return "", ErrNoCamera
	}
	if m.Frame == "" {
		return "bW9jay1mcmFtZQ==", nil
	}
	return m.Frame, nil
}

func (m *MockCamera) Close() error {
	m.opened = false
	return nil
}

// Opened reports whether the camera is currently open.
func (m *MockCamera) Opened() bool { return m.opened }

type noCamera struct{}

// NewDisabledCamera returns a camera that always fails to open.
func NewDisabledCamera() Camera { return noCamera{} }

func (noCamera) Open(context.Context) error              { return ErrNoCamera }
func (noCamera) Capture(context.Context) (string, error) { return "", ErrNoCamera }
func (noCamera) Close() error                            { return nil }
