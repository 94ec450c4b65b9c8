// Package session runs the interactive operator menu over line-oriented
// input. It owns prompting and re-prompting; every transaction is delegated
// to registry.Service.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/registry"
)

const banner = "*************"

// Session is one operator's sitting at the terminal. Users may log in and
// out any number of times before the session ends.
type Session struct {
	svc  *registry.Service
	p    *prompter
	out  io.Writer
	log  *slog.Logger
	user domain.User
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New creates a session reading answers from in and writing to out.
func New(svc *registry.Service, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		svc: svc,
		p:   newPrompter(in, out),
		out: out,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops on the login prompt until the operator answers "n" or input
// ends. Workflow failures are reported and control returns to the menu;
// only input errors end the session early.
func (s *Session) Run(ctx context.Context) error {
	err := s.loginLoop(ctx)
	if errors.Is(err, ErrEndOfInput) {
		return nil
	}
	return err
}

func (s *Session) loginLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ans, err := s.p.ask("Login? (y= Yes, n = No): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(ans)) {
		case "n":
			s.printf("Goodbye.\n")
			return nil
		case "y":
			if err := s.login(ctx); err != nil {
				return err
			}
		default:
			s.printf("Please answer y or n.\n")
		}
	}
}

func (s *Session) login(ctx context.Context) error {
	uid, err := s.p.ask("Enter Username: ")
	if err != nil {
		return err
	}
	pwd, err := s.p.ask("Enter Password: ")
	if err != nil {
		return err
	}

	user, err := s.svc.Login(ctx, uid, pwd)
	if domain.IsValidation(err) || domain.IsNotFound(err) {
		s.printf("\nInvalid login credentials!\n")
		return nil
	}
	if err != nil {
		return err
	}

	s.user = user
	s.printf("\n%s Login Success! %s\n", banner, banner)
	s.printf("Welcome %s (%s, %s)\n", user.Name, user.Role, user.City)
	s.log.Info("operator logged in", "uid", user.UID, "role", user.Role)

	defer func() { s.user = domain.User{} }()
	switch user.Role {
	case domain.RoleAgent:
		return s.menu(ctx, s.agentCommands())
	case domain.RoleOfficer:
		return s.menu(ctx, s.officerCommands())
	default:
		s.printf("No menu for role %q.\n", user.Role)
		return nil
	}
}

// command is one lettered menu entry.
type command struct {
	key   string
	label string
	run   func(ctx context.Context) error
}

// menu shows cmds until the operator enters x.
func (s *Session) menu(ctx context.Context, cmds []command) error {
	for {
		s.printf("\n")
		for _, c := range cmds {
			s.printf("  %s) %s\n", c.key, c.label)
		}
		in, err := s.p.ask("Enter a command or x to exit: ")
		if err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(in))
		if key == "x" {
			s.log.Info("operator logged out", "uid", s.user.UID)
			return nil
		}

		c, ok := find(cmds, key)
		if !ok {
			s.printf("\n%s Command not found %s\n", banner, banner)
			continue
		}
		if err := c.run(ctx); err != nil {
			if errors.Is(err, ErrEndOfInput) || errors.Is(err, context.Canceled) {
				return err
			}
			s.report(err)
		}
	}
}

func find(cmds []command, key string) (command, bool) {
	for _, c := range cmds {
		if c.key == key {
			return c, true
		}
	}
	return command{}, false
}

// report prints a failed workflow the way the CLI prints errors.
func (s *Session) report(err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		s.printf("Error [%s]: %s\n", derr.Code, describe(derr))
		return
	}
	s.log.Error("workflow failed", "error", err)
	s.printf("Error [INTERNAL]: %v\n", err)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
