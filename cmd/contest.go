package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/contest"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/llm"
	"github.com/spf13/cobra"
)

var contestCmd = &cobra.Command{
	Use:   "contest",
	Short: "Manage coding contests",
}

var contestCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contest with AI-generated coding problems (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		startStr, _ := cmd.Flags().GetString("start")
		duration, _ := cmd.Flags().GetDuration("duration")
		subjectsStr, _ := cmd.Flags().GetString("subjects")
		count, _ := cmd.Flags().GetInt("problems")
		creator, _ := cmd.Flags().GetString("by")

		if title == "" {
			return fmt.Errorf("--title is required")
		}

		start := time.Now().Add(5 * time.Minute)
		if startStr != "" {
			var err error
			start, err = time.ParseInLocation("2006-01-02 15:04", startStr, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --start (want YYYY-MM-DD HH:MM): %w", err)
			}
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if creator != "" {
			acct, err := st.Accounts().Get(ctx, creator)
			if err != nil {
				return fmt.Errorf("load creator account: %w", err)
			}
			if acct == nil {
				return fmt.Errorf("no account registered for %s", creator)
			}
			if acct.Role != account.RoleAdmin {
				return fmt.Errorf("%s is not an admin account", creator)
			}
		}

		subjects := cfg.Subjects
		if subjectsStr != "" {
			subjects = splitSubjects(subjectsStr)
		}

		provider, err := llm.NewProvider(ctx, cfg.LLM, st.LLMEvents())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		svc := content.NewService(provider, cfg.Content)

		fmt.Printf("Generating %d coding problems for %s...\n", count, strings.Join(subjects, ", "))
		problems, err := svc.GenerateCodingProblems(ctx, subjects, account.TierAdvanced, count)
		if err != nil {
			return fmt.Errorf("generate problems: %w", err)
		}

		c := contest.New(title, start, duration, subjects, problems, creator)
		if err := st.Contests().SaveContest(ctx, c); err != nil {
			return fmt.Errorf("save contest: %w", err)
		}

		_, end := c.Window()
		fmt.Printf("Created contest %s\n", c.ID)
		fmt.Printf("  %q with %d problems\n", c.Title, len(c.Problems))
		fmt.Printf("  %s → %s\n",
			c.StartTime.Local().Format("2006-01-02 15:04"),
			end.Local().Format("15:04"))
		return nil
	},
}

var contestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contests",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.Contests().ListContests(context.Background())
		if err != nil {
			return fmt.Errorf("list contests: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No contests scheduled.")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-36s  %-24s  %-16s  %-8s  %s\n", "ID", "Title", "Starts", "Length", "Status")
		fmt.Println(strings.Repeat("─", 100))
		for _, c := range all {
			start, end := c.Window()
			status := "scheduled"
			switch {
			case now.After(end):
				status = "ended"
			case now.After(start):
				status = "live"
			}
			fmt.Printf("%-36s  %-24s  %-16s  %-8s  %s\n",
				c.ID, truncate(c.Title, 24),
				start.Local().Format("2006-01-02 15:04"),
				c.Duration, status)
		}
		return nil
	},
}

func splitSubjects(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	contestCreateCmd.Flags().String("title", "", "Contest title (required)")
	contestCreateCmd.Flags().String("start", "", "Start time as YYYY-MM-DD HH:MM in local time (default: 5 minutes from now)")
	contestCreateCmd.Flags().Duration("duration", contest.DefaultDuration, "Contest length")
	contestCreateCmd.Flags().String("subjects", "", "Comma-separated subjects (default: configured subjects)")
	contestCreateCmd.Flags().IntP("problems", "n", 3, "Number of coding problems to generate")
	contestCreateCmd.Flags().String("by", "", "Creator account email (must be an admin when set)")

	contestCmd.AddCommand(contestCreateCmd)
	contestCmd.AddCommand(contestListCmd)
}
