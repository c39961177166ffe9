package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-auth-backend/internal/auth"
)

var errNoPassword = errors.New("no password given")

// NewHashPasswordCmd creates the hash-password subcommand. It prints a bcrypt
// hash suitable for seeding the users table by hand.
func NewHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Long: `Print the bcrypt hash of a password. The password is read from the
first argument or, when absent, from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cost") {
				cost = getenvCost(cost)
			}
			hash, err := auth.NewPasswordHasher(cost).Hash(pw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost (defaults to $BCRYPT_COST)")
	return cmd
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPassword
	}
	return line, nil
}

func getenvCost(def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("BCRYPT_COST"))); err == nil {
		return v
	}
	return def
}
