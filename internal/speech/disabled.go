package speech

import (
	"context"

	"github.com/maratech/voxguide/internal/i18n"
)

// disabled backends report ErrUnavailable so the dialogue engine falls back
// to manual navigation immediately.
type disabledSynth struct{}

func NewDisabledSynth() Synthesizer { return disabledSynth{} }

func (disabledSynth) Speak(context.Context, Utterance) error { return ErrUnavailable }
func (disabledSynth) CancelAll()                             {}

type disabledRecognizer struct{}

func NewDisabledRecognizer() Recognizer { return disabledRecognizer{} }

func (disabledRecognizer) Listen(context.Context, i18n.Language) (Result, error) {
	return Result{}, ErrUnavailable
}
