package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/registry/internal/domain"
)

// ErrEndOfInput is returned when the operator's input is exhausted.
var ErrEndOfInput = errors.New("end of input")

// prompter reads one answer per line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the next input line without its newline.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrEndOfInput
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// askValid re-prompts until parse accepts the answer. Only validation
// errors cause a re-prompt; any other error is returned.
func askValid[T any](p *prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := p.ask(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		if !domain.IsValidation(err) {
			var zero T
			return zero, err
		}
		fmt.Fprintf(p.out, "Invalid input! %s\n", describe(err))
	}
}

// describe renders an error for the operator without its code prefix.
func describe(err error) string {
	var derr *domain.Error
	if errors.As(err, &derr) {
		if derr.Field != "" {
			return derr.Field + " " + derr.Message
		}
		return derr.Message
	}
	return err.Error()
}

// yesNo accepts y/yes/n/no in any case.
func yesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, domain.NewValidationError("answer", "must be y or n")
}

// pick parses a 1-based choice among n items.
func pick(n int) func(string) (int, error) {
	return func(s string) (int, error) {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i < 1 || i > n {
			return 0, domain.NewValidationError("choice", fmt.Sprintf("must be a number from 1 to %d", n))
		}
		return i, nil
	}
}
