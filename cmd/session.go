package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		username := loginUsername
		if username == "" {
			username = prompt(in, out, "Username: ")
		}
		password := loginPassword
		if password == "" {
			password = prompt(in, out, "Password: ")
		}

		return withConsole(ctx, false, func(c *console, _ *session.Session) error {
			sess, err := c.session.Login(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(cmd.Context(), false, func(c *console, _ *session.Session) error {
			if err := c.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user and the views it may open",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsole(cmd.Context(), true, func(c *console, sess *session.Session) error {
			renderWhoami(cmd.OutOrStdout(), sess)
			return nil
		})
	},
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when empty)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when empty)")
}
