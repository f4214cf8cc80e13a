package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <email>",
	Short: "Show progression statistics for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		acct, err := st.Accounts().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}
		if acct == nil {
			return fmt.Errorf("no account registered for %s", args[0])
		}

		printStats(acct)
		return nil
	},
}

func printStats(acct *account.Account) {
	fmt.Printf("%s <%s>\n", acct.Name, acct.Email)
	fmt.Println(strings.Repeat("─", 60))

	level := acct.Level.String()
	if acct.PlacementReady {
		level += "  (placement ready)"
	}
	fmt.Printf("Level:          %s\n", level)
	fmt.Printf("Tests taken:    %d\n", acct.TotalTests)
	fmt.Printf("Average score:  %d%%\n", acct.AverageScore)
	fmt.Printf("Highest score:  %d%%\n", acct.HighestScore)

	if len(acct.TestsTaken) > 0 {
		tiers := make([]string, 0, len(acct.TestsTaken))
		for tier := range acct.TestsTaken {
			tiers = append(tiers, tier)
		}
		sort.Slice(tiers, func(i, j int) bool {
			return account.ParseTier(tiers[i]) < account.ParseTier(tiers[j])
		})
		parts := make([]string, 0, len(tiers))
		for _, tier := range tiers {
			parts = append(parts, fmt.Sprintf("%s %d", tier, acct.TestsTaken[tier]))
		}
		fmt.Printf("By tier:        %s\n", strings.Join(parts, ", "))
	}

	if len(acct.Badges) > 0 {
		fmt.Printf("Badges:         %s\n", strings.Join(acct.Badges, ", "))
	}
	if len(acct.WeakAreas) > 0 {
		fmt.Printf("Weak areas:     %s\n", strings.Join(acct.WeakAreas, ", "))
	}

	if len(acct.Attempts) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-4s  %-16s  %-10s  %-6s  %s\n", "#", "Date", "Tier", "Score", "Subjects")
	fmt.Println(strings.Repeat("─", 60))
	for _, at := range acct.Attempts {
		fmt.Printf("%-4d  %-16s  %-10s  %5d%%  %s\n",
			at.Number,
			at.TakenAt.Local().Format("2006-01-02 15:04"),
			at.Tier.String(),
			at.Percent,
			strings.Join(at.Subjects, ", "),
		)
	}
}
