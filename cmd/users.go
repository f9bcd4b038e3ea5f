package cmd

import (
	"fmt"

	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/user"
	"github.com/spf13/cobra"
)

var (
	userCreate user.CreateDTO
	userUpdate user.UpdateDTO
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer console accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			accounts, err := c.users.List(ctx, sess)
			if err != nil {
				return err
			}
			renderUsers(cmd.OutOrStdout(), accounts)
			return nil
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			if err := c.users.Create(ctx, sess, userCreate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s created\n", userCreate.Username)
			return nil
		})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update USER",
	Short: "Change name, role or password of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			account, err := c.users.Find(ctx, sess, args[0])
			if err != nil {
				return err
			}
			dto := userUpdate
			if dto.Name == "" {
				dto.Name = account.Name
			}
			if dto.Role == "" {
				dto.Role = string(account.Role)
			}
			if err := c.users.Update(ctx, sess, account.ID, dto); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s updated\n", account.Username)
			return nil
		})
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate USER",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			if err := c.users.Deactivate(ctx, sess, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s deactivated\n", args[0])
			return nil
		})
	},
}

var usersToggleCmd = &cobra.Command{
	Use:   "toggle USER",
	Short: "Flip the active flag of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withConsole(ctx, true, func(c *console, sess *session.Session) error {
			active, err := c.users.ToggleActive(ctx, sess, args[0])
			if err != nil {
				return err
			}
			state := "inactive"
			if active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s is now %s\n", args[0], state)
			return nil
		})
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&userCreate.Username, "username", "", "login name")
	usersCreateCmd.Flags().StringVar(&userCreate.Name, "name", "", "display name")
	usersCreateCmd.Flags().StringVar(&userCreate.Password, "password", "", "at least 6 characters")
	usersCreateCmd.Flags().StringVar(&userCreate.Role, "role", "viewer", "superadmin, admin, manager or viewer")

	usersUpdateCmd.Flags().StringVar(&userUpdate.Name, "name", "", "display name (unchanged when empty)")
	usersUpdateCmd.Flags().StringVar(&userUpdate.Role, "role", "", "new role (unchanged when empty)")
	usersUpdateCmd.Flags().StringVar(&userUpdate.Password, "password", "", "new password (unchanged when empty)")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeactivateCmd)
	usersCmd.AddCommand(usersToggleCmd)
}
