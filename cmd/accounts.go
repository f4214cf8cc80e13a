package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List registered accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.Accounts().All(context.Background())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No accounts registered.")
			return nil
		}

		emails := make([]string, 0, len(all))
		for email := range all {
			emails = append(emails, email)
		}
		sort.Strings(emails)

		fmt.Printf("%-24s  %-28s  %-8s  %-10s  %-5s  %s\n",
			"Name", "Email", "Role", "Level", "Tests", "Avg")
		fmt.Println(strings.Repeat("─", 90))
		for _, email := range emails {
			a := all[email]
			fmt.Printf("%-24s  %-28s  %-8s  %-10s  %-5d  %d%%\n",
				truncate(a.Name, 24), truncate(a.Email, 28), a.Role, a.Level, a.TotalTests, a.AverageScore)
		}
		return nil
	},
}
