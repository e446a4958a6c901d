package speech

import (
	"context"
	"sync"
	"time"

	"github.com/maratech/voxguide/internal/i18n"
)

// MockSynth records what it was asked to speak. Safe for concurrent use.
type MockSynth struct {
	mu     sync.Mutex
	spoken []Utterance
	delay  time.Duration
}

func NewMockSynth() *MockSynth {
	return &MockSynth{}
}

// SetDelay makes Speak take a fixed amount of time, for cancellation tests.
func (m *MockSynth) SetDelay(d time.Duration) {
	m.mu.Lock()
	m.delay = d
	m.mu.Unlock()
}

func (m *MockSynth) Speak(ctx context.Context, u Utterance) error {
	m.mu.Lock()
	d := m.delay
	m.mu.Unlock()
	if d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	m.mu.Lock()
	m.spoken = append(m.spoken, u)
	m.mu.Unlock()
	return nil
}

func (m *MockSynth) CancelAll() {}

// Spoken returns a copy of everything spoken so far.
func (m *MockSynth) Spoken() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Utterance, len(m.spoken))
	copy(out, m.spoken)
	return out
}

// SpokenTexts returns just the text of each utterance, in order.
func (m *MockSynth) SpokenTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	for i, u := range m.spoken {
		out[i] = u.Text
	}
	return out
}

// MockRecognizer replays a scripted sequence of results. Each Listen call
// consumes the next entry; an exhausted script returns ErrNoSpeech.
type MockRecognizer struct {
	mu     sync.Mutex
	script []ScriptedResult
	next   int
}

// ScriptedResult is one turn of a scripted conversation. Err takes
// precedence over Text when set.
type ScriptedResult struct {
	Text       string
	Confidence float64
	Err        error
}

func NewMockRecognizer(script ...ScriptedResult) *MockRecognizer {
	return &MockRecognizer{script: script}
}

// Say appends utterances as successful recognitions.
func (m *MockRecognizer) Say(texts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range texts {
		m.script = append(m.script, ScriptedResult{Text: t, Confidence: 0.9})
	}
}

// Fail appends an error turn.
func (m *MockRecognizer) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, ScriptedResult{Err: err})
}

func (m *MockRecognizer) Listen(ctx context.Context, _ i18n.Language) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next >= len(m.script) {
		return Result{}, ErrNoSpeech
	}
	turn := m.script[m.next]
	m.next++
	if turn.Err != nil {
		return Result{}, turn.Err
	}
	return Result{Text: turn.Text, Confidence: turn.Confidence}, nil
}
