package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-auth-backend/internal/repo"
	"github.com/tbourn/go-auth-backend/internal/sysutil"
)

// NewGrantAdminCmd creates the grant-admin subcommand.
func NewGrantAdminCmd() *cobra.Command {
	var (
		dbPath string
		revoke bool
	)
	cmd := &cobra.Command{
		Use:   "grant-admin <username|email>",
		Short: "Allow a user to rename other users",
		Long: `Set the admin flag on the account the login resolves to. Admins may
rename any user through PUT /users/display-names; everyone else may only
rename themselves. --revoke clears the flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrantAdmin(cmd, sysutil.FirstNonEmpty(dbPath, getenvDBPath()), args[0], !revoke)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite path or DSN")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "clear the admin flag instead")
	return cmd
}

func runGrantAdmin(cmd *cobra.Command, path, login string, admin bool) error {
	db, err := repo.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer closeDB(db)

	u, err := repo.SetAdmin(cmd.Context(), db, login, admin)
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("no user matches %q", login)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%t\n", u.Username, u.IsAdmin)
	return nil
}
