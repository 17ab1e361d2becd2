package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

// runLogin authenticates and prints export lines for the shell. No
// session file is written; the token pair lives in the environment only.
func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password (omit to be prompted)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return subUsageError("backoffice login --username <name> [--password <pass>]")
	}

	pass := *password
	if pass == "" {
		fmt.Fprint(os.Stderr, "password: ")

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		pass = strings.TrimRight(line, "\r\n")
	}

	session, err := a.auth.Login(ctx, *username, pass)
	if err != nil {
		return err
	}

	profile := session.Profile()

	a.printf("# logged in as %s (%s)\n", profile.Username, profile.Role)
	a.printf("export BACKOFFICE_ACCESS_TOKEN=%s\n", session.AccessToken())
	a.printf("export BACKOFFICE_REFRESH_TOKEN=%s\n", session.RefreshToken())

	return nil
}
