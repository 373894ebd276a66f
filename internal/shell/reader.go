package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const historyFile = ".payday_calendar_history"

// LineReader reads one line of input after showing prompt.
// It returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewReader returns a readline editor when stdin is a terminal and a
// plain buffered reader otherwise.
func NewReader(in *os.File, out io.Writer) (LineReader, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return NewBufferedReader(in, out), nil
	}
	return newReadlineReader(in, out)
}

type readlineReader struct {
	rl *readline.Instance
}

func newReadlineReader(in *os.File, out io.Writer) (*readlineReader, error) {
	config := &readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           in,
		Stdout:          out,
	}
	if usr, err := user.Current(); err == nil {
		config.HistoryFile = filepath.Join(usr.HomeDir, historyFile)
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to start line editor: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	// Ctrl+C answers with an empty line
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// BufferedReader reads lines from any io.Reader and echoes prompts to out
type BufferedReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewBufferedReader wraps in. Prompts are written to out.
func NewBufferedReader(in io.Reader, out io.Writer) *BufferedReader {
	return &BufferedReader{in: bufio.NewReader(in), out: out}
}

func (r *BufferedReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *BufferedReader) Close() error {
	return nil
}
