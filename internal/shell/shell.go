// Package shell implements the interactive loop that prints payday tables
// and optionally saves them as CSV.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

// Prompts shown by the shell
const (
	PromptYear     = "Insert year you want the table for: "
	PromptSave     = "Do you want to save (yes/NO): "
	PromptContinue = "Do you want to get another table (YES/no): "
)

// Saver persists the CSV text of a year table and returns where it went
type Saver interface {
	Save(year int, csv string) (string, error)
}

// Shell is one interactive session
type Shell struct {
	in    LineReader
	out   io.Writer
	store Saver
	cache *payday.Cache
}

// New creates a Shell reading from in and printing to out
func New(in LineReader, out io.Writer, store Saver) *Shell {
	return &Shell{
		in:    in,
		out:   out,
		store: store,
		cache: payday.NewCache(),
	}
}

// Run loops until the user answers "no" or the input ends.
// Answers are compared as typed, ignoring case only: " no" does not stop.
// End of input is not an error.
func (s *Shell) Run() error {
	for {
		year, err := s.readYear()
		if err != nil {
			return endOfInput(err)
		}

		table, err := s.cache.Table(year)
		if errors.Is(err, payday.ErrInvalidDate) {
			fmt.Fprintln(s.out, err)
			continue
		}
		if err != nil {
			return err
		}
		csv := table.CSV()
		fmt.Fprintln(s.out, csv)

		answer, err := s.in.ReadLine(PromptSave)
		if err != nil {
			return endOfInput(err)
		}
		if strings.EqualFold(answer, "yes") {
			s.save(year, csv)
		}

		answer, err = s.in.ReadLine(PromptContinue)
		if err != nil {
			return endOfInput(err)
		}
		if strings.EqualFold(answer, "no") {
			return nil
		}
	}
}

// readYear prompts until the answer is an integer
func (s *Shell) readYear() (int, error) {
	for {
		line, err := s.in.ReadLine(PromptYear)
		if err != nil {
			return 0, err
		}
		if year, err := strconv.Atoi(line); err == nil {
			return year, nil
		}
	}
}

func (s *Shell) save(year int, csv string) {
	path, err := s.store.Save(year, csv)
	if err != nil {
		log.Error("failed to save table %d: %v", year, err)
		fmt.Fprintf(s.out, "Failed to save table: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
