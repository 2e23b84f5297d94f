package shell

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl-C.
var ErrAborted = errors.New("aborted")

// Prompter reads one line of user input. io.EOF ends the session.
type Prompter interface {
	Prompt(prompt string) (string, error)
	// SetWords offers words for tab completion in the next prompts.
	SetWords(words []string)
	Close() error
}

// LinePrompter is a Prompter on top of a liner terminal with history.
type LinePrompter struct {
	state   *liner.State
	history string
	words   []string
}

func NewLinePrompter(historyFile string) *LinePrompter {
	p := &LinePrompter{state: liner.NewLiner(), history: historyFile}
	p.state.SetCtrlCAborts(true)
	p.state.SetCompleter(p.complete)
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = p.state.ReadHistory(f)
			f.Close()
		}
	}
	return p
}

func (p *LinePrompter) complete(line string) []string {
	var out []string
	for _, w := range p.words {
		if strings.HasPrefix(strings.ToLower(w), strings.ToLower(line)) {
			out = append(out, w)
		}
	}
	return out
}

func (p *LinePrompter) SetWords(words []string) {
	p.words = words
}

func (p *LinePrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal and saves history.
func (p *LinePrompter) Close() error {
	if p.history != "" {
		if f, err := os.Create(p.history); err == nil {
			_, _ = p.state.WriteHistory(f)
			f.Close()
		}
	}
	return p.state.Close()
}

// ScriptPrompter replays fixed answers and records the prompts it was shown.
type ScriptPrompter struct {
	Lines   []string
	Prompts []string
}

func (p *ScriptPrompter) Prompt(prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.Lines) == 0 {
		return "", io.EOF
	}
	line := p.Lines[0]
	p.Lines = p.Lines[1:]
	return line, nil
}

func (p *ScriptPrompter) SetWords(words []string) {}
func (p *ScriptPrompter) Close() error            { return nil }
