package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	loginName  string
	loginEmail string
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long:  "Show the signed-in user, or the configured user.id when nobody is signed in.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return whoamiRun(cmd.Context(), os.Stdout)
	},
}

func whoamiRun(ctx context.Context, w io.Writer) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, u)
	}
	fmt.Fprintf(w, "%s (%s)\n", u.DisplayName(), u.ID)
	if u.Email != "" {
		fmt.Fprintln(w, u.Email)
	}
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login <user-id>",
	Short: "Sign in as a user",
	Long: `Sign in as a user on this machine. Check-ins and journal entries are
recorded under the signed-in user until logout. There is no password: this
selects whose data is shown.`,
	Example: `  wellnessctl login sam --name "Sam Rivera"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return loginRun(cmd.Context(), os.Stdout, session.User{ID: args[0], Name: loginName, Email: loginEmail})
	},
}

func loginRun(ctx context.Context, w io.Writer, u session.User) error {
	if err := sess.SignIn(ctx, u); err != nil {
		return err
	}
	fmt.Fprintf(w, "Signed in as %s.\n", u.DisplayName())
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long:  "Sign out; the configured user.id is used again afterwards.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logoutRun(cmd.Context(), os.Stdout)
	},
}

func logoutRun(ctx context.Context, w io.Writer) error {
	if err := sess.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "Signed out.")
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "display name")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	rootCmd.AddCommand(whoamiCmd, loginCmd, logoutCmd)
}
