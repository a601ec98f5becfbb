package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trackspring/client/pkg/models"
	"golang.org/x/term"
)

func register(ctx context.Context, e *env, args []string) error {
	fs := e.flags("register")
	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		return fmt.Errorf("%w: -user and -email are required", ErrUsage)
	}

	pw, err := e.password(*password)
	if err != nil {
		return err
	}

	auth, err := e.services.Auth.Register(ctx, models.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: pw,
	})
	if err != nil {
		return err
	}

	return e.login(auth, "Registered and logged in")
}

func login(ctx context.Context, e *env, args []string) error {
	fs := e.flags("login")
	username := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return fmt.Errorf("%w: -user is required", ErrUsage)
	}

	pw, err := e.password(*password)
	if err != nil {
		return err
	}

	auth, err := e.services.Auth.Login(ctx, models.LoginRequest{
		Username: *username,
		Password: pw,
	})
	if err != nil {
		return err
	}

	return e.login(auth, "Logged in")
}

func (e *env) login(auth models.AuthResponse, verb string) error {
	if err := e.session.Login(auth.User(), auth.Token); err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s as %s\n", verb, auth.Username)
	return nil
}

func logout(_ context.Context, e *env, _ []string) error {
	if err := e.session.Logout(); err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, "Logged out")
	return nil
}

func whoami(ctx context.Context, e *env, _ []string) error {
	user, err := e.services.Auth.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s <%s>\n", user.Username, user.Email)
	return nil
}

// password returns flagValue or reads the password from stdin.
// On a terminal, the input is not echoed.
func (e *env) password(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(e.stdout, "Password: ")
	password, err := readPassword(e.stdin)
	fmt.Fprintln(e.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: the password must not be empty", ErrUsage)
	}
	return password, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
