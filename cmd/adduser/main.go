// Command adduser creates a Spendlog account from the command line.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"spendlog/internal/database"
	"spendlog/internal/logger"
	"spendlog/internal/services"
)

// openFunc opens the application database and returns a closer for it.
type openFunc func() (*gorm.DB, func(), error)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	cmd := newRootCommand(openDatabase)
	cmd.SetIn(os.Stdin)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(open openFunc) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a Spendlog user",
		Long: `Create a Spendlog user in the configured database.

The database is selected with the same DB_* environment variables the server
reads, and pending migrations are applied first. The password is prompted for
when --password is omitted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAddUser(cmd, open, username, password)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runAddUser(cmd *cobra.Command, open openFunc, username, password string) error {
	out := cmd.OutOrStdout()

	confirm := password
	if password == "" {
		in := newPasswordReader(cmd.InOrStdin())
		var err error
		if password, err = in.prompt(out, "Password: "); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if confirm, err = in.prompt(out, "Confirm password: "); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	db, closeDB, err := open()
	if err != nil {
		return err
	}
	defer closeDB()

	user, err := services.NewUserService(db).Signup(username, password, confirm)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

// passwordReader reads passwords without echo from a terminal, or line by
// line from anything else (pipes, tests).
type passwordReader struct {
	fd    int
	tty   bool
	lines *bufio.Reader
}

func newPasswordReader(in io.Reader) *passwordReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &passwordReader{fd: int(f.Fd()), tty: true}
	}
	return &passwordReader{lines: bufio.NewReader(in)}
}

func (r *passwordReader) prompt(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	defer fmt.Fprintln(out)

	if r.tty {
		b, err := term.ReadPassword(r.fd)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := r.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func openDatabase() (*gorm.DB, func(), error) {
	cfg, err := database.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load database configuration: %w", err)
	}

	manager, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := manager.RunMigrations(); err != nil {
		_ = manager.Close()
		return nil, nil, err
	}

	return manager.DB(), func() { _ = manager.Close() }, nil
}
