package speech

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"

	"github.com/maratech/voxguide/internal/i18n"
)

// execSynth shells out to an external TTS engine. The command receives one
// JSON request on stdin and must exit once playback completes.
type execSynth struct {
	cmd []string
	mu  sync.Mutex

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

type synthExecRequest struct {
	Text string  `json:"text"`
	Lang string  `json:"lang"`
	Rate float64 `json:"rate"`
}

func NewExecSynth(command string) (Synthesizer, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse speak command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("speak command empty")
	}
	return &execSynth{cmd: args}, nil
}

func (e *execSynth) Speak(ctx context.Context, u Utterance) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	e.cancelMu.Lock()
	e.cancel = cancel
	e.cancelMu.Unlock()
	defer cancel()

	payload, err := json.Marshal(synthExecRequest{
		Text: u.Text,
		Lang: u.Lang.SpeechTag(),
		Rate: u.Rate,
	})
	if err != nil {
		return err
	}

	base := e.cmd[0]
	args := append([]string{}, e.cmd[1:]...)
	cmd := exec.CommandContext(ctx, base, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := stdin.Write(payload); err != nil {
		stdin.Close()
		cmd.Wait()
		return err
	}
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speak command: %w", err)
	}
	return nil
}

func (e *execSynth) CancelAll() {
	e.cancelMu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancelMu.Unlock()
}

// execRecognizer shells out to an external STT engine. The command receives
// one JSON request on stdin and must write one JSON result line on stdout.
type execRecognizer struct {
	cmd []string
	mu  sync.Mutex
}

type recognizeExecRequest struct {
	Lang string `json:"lang"`
}

type recognizeExecResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

func NewExecRecognizer(command string) (Recognizer, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse listen command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("listen command empty")
	}
	return &execRecognizer{cmd: args}, nil
}

func (e *execRecognizer) Listen(ctx context.Context, lang i18n.Language) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	payload, err := json.Marshal(recognizeExecRequest{Lang: lang.SpeechTag()})
	if err != nil {
		return Result{}, err
	}

	base := e.cmd[0]
	args := append([]string{}, e.cmd[1:]...)
	cmd := exec.CommandContext(ctx, base, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Result{}, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, err
	}
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := stdin.Write(payload); err != nil {
		stdin.Close()
		cmd.Wait()
		return Result{}, err
	}
	stdin.Close()

	scanner := bufio.NewScanner(stdout)
	var resp recognizeExecResponse
	decoded := false
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := json.Unmarshal(line, &resp); err != nil {
			cmd.Wait()
			return Result{}, err
		}
		decoded = true
		break
	}
	if err := cmd.Wait(); err != nil && ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if !decoded {
		if err := scanner.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, ErrNoSpeech
	}
	switch resp.Error {
	case "":
	case "no_speech", "no-speech":
		return Result{}, ErrNoSpeech
	default:
		return Result{}, fmt.Errorf("listen command: %s", resp.Error)
	}
	if resp.Text == "" {
		return Result{}, ErrNoSpeech
	}
	return Result{Text: resp.Text, Confidence: resp.Confidence}, nil
}
