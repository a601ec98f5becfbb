// Package cli implements the commands of the trackspring binary.
//
// Every command opens the persisted session, talks to the API through
// pkg/service and prints plain text. Failures are returned to the caller,
// which prints them with Banner.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/trackspring/client/internal/config"
	"github.com/trackspring/client/internal/storage"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/form"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/state"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrUsage       = errors.New("invalid usage")
	ErrNotLoggedIn = errors.New("you are not logged in, run 'trackspring login' first")
)

// env is what a command runs with.
type env struct {
	services     service.Services
	session      *state.Session
	transactions *state.Transactions
	converter    *form.Converter

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

type command struct {
	usage string
	auth  bool
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"register":   {"Create an account and log in", false, register},
	"login":      {"Log in with username and password", false, login},
	"logout":     {"Forget the stored session", false, logout},
	"whoami":     {"Show the logged in user", true, whoami},
	"list":       {"List transactions, one page at a time", true, list},
	"recent":     {"Show the ten most recent transactions", true, recent},
	"add":        {"Record a transaction", true, add},
	"edit":       {"Change a transaction", true, edit},
	"delete":     {"Delete a transaction", true, remove},
	"summary":    {"Show income, expenses and net worth", true, summary},
	"categories": {"List and manage categories", true, categories},
	"analytics":  {"Show totals per category and month", true, analytics},
	"convert":    {"Convert an amount between currencies", true, convert},
	"rates":      {"Show exchange rates and the rate cache", true, rates},
	"currencies": {"List the supported currencies", true, currencies},
}

// Run executes the command named by args[0].
func Run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return fmt.Errorf("%w: a command is required", ErrUsage)
	}

	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		usage(stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	store, err := storage.Open(cfg.StateDB)
	if err != nil {
		return fmt.Errorf("could not open the session store: %w", err)
	}
	defer store.Close()

	session, err := state.NewSession(store)
	if err != nil {
		return err
	}

	client, err := api.New(cfg.APIURL, api.WithTokenSource(session), api.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return err
	}

	if cmd.auth && !session.IsAuthenticated() {
		return ErrNotLoggedIn
	}

	services := service.New(client)
	e := &env{
		services:     services,
		session:      session,
		transactions: state.NewTransactions(services.Transactions),
		converter:    form.NewConverter(services.Currency),
		stdin:        stdin,
		stdout:       stdout,
		stderr:       stderr,
		now:          time.Now,
	}

	return cmd.run(ctx, e, args[1:])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trackspring <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	names := maps.Keys(commands)
	slices.Sort(names)

	tw := newTable(w)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, commands[name].usage)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'trackspring <command> -h' for the flags of a command.")
}

// Banner returns the text shown for a failed command.
func Banner(err error) string {
	var fieldErrs form.Errors
	if errors.As(err, &fieldErrs) {
		fields := maps.Keys(fieldErrs)
		slices.Sort(fields)

		lines := []string{"Please correct the following:"}
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f, fieldErrs[f]))
		}
		return strings.Join(lines, "\n")
	}

	msg := "Error: " + api.Message(err)
	if errors.Is(err, api.ErrUnauthenticated) {
		msg += "\nYour session may have expired, run 'trackspring login'."
	}
	return msg
}

func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
