// Package speech abstracts the synthesis and recognition backends the
// dialogue engine talks through. Backends are interchangeable: a mock pair
// for tests, an exec pair that shells out to external engines.
package speech

import (
	"context"
	"errors"

	"github.com/maratech/voxguide/internal/i18n"
)

// ErrUnavailable means the backend cannot run at all. The dialogue engine
// treats this as fatal and hands control back to manual navigation.
var ErrUnavailable = errors.New("speech backend unavailable")

// ErrNoSpeech means the listen window elapsed without a usable utterance.
// It is retryable and counts against the retry budget.
var ErrNoSpeech = errors.New("no speech detected")

// Utterance is one piece of text to speak aloud.
type Utterance struct {
	Text string
	Lang i18n.Language
	Rate float64
}

// Result is a recognized transcript.
type Result struct {
	Text       string
	Confidence float64
}

// Synthesizer produces spoken output. Speak blocks until the utterance has
// been fully delivered or ctx is done.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
	// CancelAll discards any utterance still in flight.
	CancelAll()
}

// Recognizer captures one utterance. Listen blocks until speech is
// recognized, ctx is done, or the backend gives up.
type Recognizer interface {
	Listen(ctx context.Context, lang i18n.Language) (Result, error)
}
