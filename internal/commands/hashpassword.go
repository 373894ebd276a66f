package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
	"github.com/klabast/wb-services/payday-calendar/internal/log"
)

func newHashPasswordCmd(opts *options) *cobra.Command {
	var (
		overwrite      bool
		insecureUnmask bool
	)

	c := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file protecting the save endpoint",
		Long:  "Creates an auth file with an Argon2id hashed password. The path comes from AUTH_FILE, defaulting to auth.secret next to the executable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := app.ResolveAuthFile(opts.cfg.AuthFile)
			if err != nil {
				return err
			}

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), !insecureUnmask)

			username, err := p.line("Enter username: ")
			if err != nil {
				return fmt.Errorf("error reading username: %w", err)
			}
			if username == "" {
				return errors.New("username cannot be empty")
			}

			if insecureUnmask {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: Password will be visible on screen!")
			}
			password, err := p.password("Enter password:   ")
			if err != nil {
				return fmt.Errorf("error reading password: %w", err)
			}
			passwordConfirm, err := p.password("Confirm password: ")
			if err != nil {
				return fmt.Errorf("error reading password confirmation: %w", err)
			}

			if password == "" {
				return errors.New("password cannot be empty")
			}
			if password != passwordConfirm {
				return errors.New("passwords do not match")
			}

			err = app.CreateAuthFile(path, username, password, overwrite)
			if errors.Is(err, app.ErrAuthFileExists) {
				answer, rerr := p.line(fmt.Sprintf("Auth file %s already exists. Overwrite? (yes/NO): ", path))
				if rerr != nil || !strings.EqualFold(answer, "yes") {
					return errors.New("aborted, auth file unchanged")
				}
				err = app.CreateAuthFile(path, username, password, true)
			}
			if err != nil {
				return err
			}

			log.Info("auth file written: %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Auth file created: %s (user: %s)\n", path, username)
			return nil
		},
	}

	c.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing auth file without asking")
	c.Flags().BoolVar(&insecureUnmask, "insecure-unmask-password", false, "show the password as plain text (INSECURE!)")
	return c
}

// prompter reads answers from in. Passwords are masked when in is a terminal.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	tty    *os.File
	masked bool
}

func newPrompter(in io.Reader, out io.Writer, mask bool) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
		p.masked = mask
	}
	return p
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) password(prompt string) (string, error) {
	if !p.masked {
		return p.line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	return readPasswordWithMask(p.tty, p.out)
}

// readPasswordWithMask reads a password in raw mode and echoes asterisks
func readPasswordWithMask(tty *os.File, out io.Writer) (string, error) {
	fd := int(tty.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Fallback to hidden input
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), err
	}
	defer func() {
		if err := term.Restore(fd, oldState); err != nil {
			log.Warn("failed to restore terminal: %v", err)
		}
	}()

	var password []byte
	buf := make([]byte, 1)
	for {
		if _, err := tty.Read(buf); err != nil {
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		}

		switch c := buf[0]; c {
		case '\n', '\r':
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			fmt.Fprint(out, "\r\n")
			return "", errors.New("interrupted")
		default:
			if c >= 32 && c <= 126 {
				password = append(password, c)
				fmt.Fprint(out, "*")
			}
		}
	}
}
