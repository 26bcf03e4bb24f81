package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/admin"
)

// usersCmd groups the user commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect registered catalog users",
}

// usersListCmd represents the users list command
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	users, err := catalogClient.ListUsers(context.Background())
	if err != nil {
		return err
	}

	if outputFormat != admin.OutputTable {
		return admin.Encode(os.Stdout, outputFormat, users, "")
	}

	fmt.Print(operations.Formatter().FormatUsers(users))
	return nil
}
