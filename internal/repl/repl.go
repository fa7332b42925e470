// Package repl implements the line-oriented command interface over a ledger.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/storage"
)

const prompt = "> "

var (
	// ErrQuit is returned by Exec for the quit command.
	ErrQuit = errors.New("quit")

	// ErrUsage is returned for unknown commands and malformed arguments.
	ErrUsage = errors.New("usage")
)

type command struct {
	name string
	args []string
	help string
	run  func(r *REPL, args []string) error
}

func (c command) usage() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + " " + strings.Join(c.args, " ")
}

var commands []command

func init() {
	commands = []command{
		{"list_groups", nil, "list every group", (*REPL).listGroups},
		{"add_group", []string{"<group>"}, "create a group", (*REPL).addGroup},
		{"list_users", []string{"<group>"}, "list users, lowest balance first", (*REPL).listUsers},
		{"add_user", []string{"<group>", "<user>"}, "add a user to a group", (*REPL).addUser},
		{"remove_user", []string{"<group>", "<user>"}, "remove a user and their transactions", (*REPL).removeUser},
		{"user_balance", []string{"<group>", "<user>"}, "show how much a user has paid", (*REPL).userBalance},
		{"under_paid", []string{"<group>"}, "list users tied for the lowest balance", (*REPL).underPaid},
		{"add_xct", []string{"<group>", "<user>", "<amount>"}, "record a payment", (*REPL).addTransaction},
		{"recent_xct", []string{"<group>", "<n>"}, "show the n most recent payments", (*REPL).recentTransactions},
		{"summary", []string{"<group>"}, "show totals and who should pay whom", (*REPL).summary},
		{"help", nil, "show this help", (*REPL).help},
		{"quit", nil, "leave", func(*REPL, []string) error { return ErrQuit }},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	if name == "exit" {
		return lookup("quit")
	}
	return command{}, false
}

// REPL reads commands, runs them against a ledger and writes reports to out.
type REPL struct {
	ledger storage.Ledger
	out    io.Writer
}

// New creates a REPL over l writing to out.
func New(l storage.Ledger, out io.Writer) *REPL {
	return &REPL{ledger: l, out: out}
}

// Run executes commands from in until EOF, quit, or ctx is done.
// Command failures are reported on out and do not stop the loop.
// When interactive is set a prompt is written before each line.
func (r *REPL) Run(ctx context.Context, in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(r.out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.Exec(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
	if interactive {
		fmt.Fprintln(r.out)
	}
	return scanner.Err()
}

// Exec runs a single command line. Blank lines and lines starting with #
// are ignored.
func (r *REPL) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, ok := lookup(fields[0])
	if !ok {
		return fmt.Errorf("%w: unknown command %q, try help", ErrUsage, fields[0])
	}
	args := fields[1:]
	if len(args) != len(cmd.args) {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage())
	}

	slog.Debug("Executing command", "command", cmd.name, "args", args)
	return cmd.run(r, args)
}

func (r *REPL) println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *REPL) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

func (r *REPL) listGroups(_ []string) error {
	groups, err := r.ledger.ListGroups()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		r.println("There are no groups")
		return nil
	}

	r.println("List of groups:")
	for _, name := range groups {
		r.println(name)
	}
	return nil
}

func (r *REPL) addGroup(args []string) error {
	group, err := r.ledger.AddGroup(args[0])
	if err != nil {
		return err
	}
	r.printf("Added group %s\n", group.Name)
	return nil
}

func (r *REPL) listUsers(args []string) error {
	users, err := r.ledger.ListUsers(args[0])
	if err != nil {
		return err
	}
	if len(users) == 0 {
		r.printf("There are no users in %s\n", args[0])
		return nil
	}

	r.printf("List of users in %s\n", args[0])
	for _, u := range users {
		r.println(u.Name)
	}
	return nil
}

func (r *REPL) addUser(args []string) error {
	user, err := r.ledger.AddUser(args[0], args[1])
	if err != nil {
		return err
	}
	r.printf("Added user %s to %s\n", user.Name, args[0])
	return nil
}

func (r *REPL) removeUser(args []string) error {
	removed, err := r.ledger.RemoveUser(args[0], args[1])
	if err != nil {
		return err
	}
	r.printf("Removed user %s from %s along with %d transactions\n", args[1], args[0], removed)
	return nil
}

func (r *REPL) userBalance(args []string) error {
	balance, err := r.ledger.UserBalance(args[0], args[1])
	if err != nil {
		return err
	}
	r.printf("User Balance: %0.2f\n", balance)
	return nil
}

func (r *REPL) underPaid(args []string) error {
	users, err := r.ledger.UnderPaid(args[0])
	if errors.Is(err, ledger.ErrEmptyRegistry) {
		r.printf("There are no users in %s\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	r.println("Under paid users:")
	for _, u := range users {
		r.println(u.Name)
	}
	return nil
}

func (r *REPL) addTransaction(args []string) error {
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[2], ledger.ErrInvalidArgument)
	}

	xct, err := r.ledger.AddTransaction(args[0], args[1], amount)
	if err != nil {
		return err
	}
	r.printf("Recorded %0.2f for %s\n", xct.Amount, xct.User)
	return nil
}

func (r *REPL) recentTransactions(args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: count %q is not a number", ErrUsage, args[1])
	}

	xcts, err := r.ledger.RecentTransactions(args[0], n)
	if err != nil {
		return err
	}
	if len(xcts) == 0 {
		r.println("There are no transactions")
		return nil
	}

	r.println("Most recent transactions:")
	for _, x := range xcts {
		r.printf("%s: %0.2f\n", x.User, x.Amount)
	}
	return nil
}

func (r *REPL) summary(args []string) error {
	s, err := r.ledger.Summary(args[0])
	if err != nil {
		return err
	}

	r.printf("Summary of %s\n", s.Group)
	r.printf("Total: %0.2f\n", s.Total)
	r.printf("Fair share: %0.2f\n", s.FairShare)
	for _, m := range s.Members {
		r.printf("%s: %0.2f\n", m.Name, m.Balance)
	}
	if len(s.Settlements) == 0 {
		r.println("Everyone is settled up")
		return nil
	}

	r.println("Settle up:")
	for _, st := range s.Settlements {
		r.printf("%s pays %s %0.2f\n", st.From, st.To, st.Amount)
	}
	return nil
}

func (r *REPL) help(_ []string) error {
	for _, c := range commands {
		r.printf("  %-36s %s\n", c.usage(), c.help)
	}
	return nil
}
