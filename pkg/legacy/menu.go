package legacy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amirasaad/accountsystem/pkg/operation"
)

const (
	banner = "--------------------------------\n" +
		"Account Management System\n" +
		"1. View Balance\n" +
		"2. Credit Account\n" +
		"3. Debit Account\n" +
		"4. Exit\n" +
		"--------------------------------\n"
	choicePrompt  = "Enter your choice (1-4): \n"
	creditPrompt  = "Enter credit amount: \n"
	debitPrompt   = "Enter debit amount: \n"
	invalidChoice = "Invalid choice, please select 1-4.\n"
	goodbye       = "Exiting the program. Goodbye!\n"
)

// Menu replays the interactive loop of the batch program: a numbered menu read
// from in, results written to out. It stops on choice 4 or end of input.
type Menu struct {
	dispatcher operation.Dispatcher
	in         *bufio.Reader
	out        io.Writer
}

// NewMenu creates a Menu over d.
func NewMenu(d operation.Dispatcher, in io.Reader, out io.Writer) *Menu {
	return &Menu{dispatcher: d, in: bufio.NewReader(in), out: out}
}

// Run executes the loop until exit. It returns the first read or write error
// other than end of input.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := m.write(banner + choicePrompt); err != nil {
			return err
		}

		line, eof, err := m.readLine()
		if err != nil {
			return err
		}
		if eof {
			break
		}

		choice, ok := parseChoice(line)
		if !ok {
			if err := m.write(invalidChoice); err != nil {
				return err
			}
			continue
		}

		var out string
		switch choice {
		case 1:
			out = Render(m.dispatcher.Execute(ctx, operation.ViewBalance, operation.NoAmount()))
		case 2:
			out, err = m.amountOperation(ctx, creditPrompt, operation.Credit)
		case 3:
			out, err = m.amountOperation(ctx, debitPrompt, operation.Debit)
		case 4:
			return m.write(goodbye)
		default:
			out = invalidChoice
		}
		if err != nil {
			return err
		}
		if err := m.write(out); err != nil {
			return err
		}
	}
	return m.write(goodbye)
}

func (m *Menu) amountOperation(ctx context.Context, prompt string, id operation.ID) (string, error) {
	if err := m.write(prompt); err != nil {
		return "", err
	}
	line, _, err := m.readLine()
	if err != nil {
		return "", err
	}
	return Render(m.dispatcher.Execute(ctx, id, operation.AmountFromString(line))), nil
}

// readLine returns the next line without its terminator. eof is true only
// when no further input exists at all.
func (m *Menu) readLine() (line string, eof bool, err error) {
	line, err = m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", true, nil
		}
	}
	return strings.TrimRight(line, "\r\n"), false, nil
}

func (m *Menu) write(s string) error {
	if _, err := io.WriteString(m.out, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// parseChoice accepts ASCII digits only, surrounding whitespace trimmed.
func parseChoice(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
