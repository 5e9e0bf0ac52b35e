package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		stacks, err := st.Stacks().LoadAll()
		if err != nil {
			return err
		}

		now := time.Now()
		out := cmd.OutOrStdout()
		totalEntries := 0
		for _, stack := range stacks {
			due := 0
			levelSum := 0.0
			for _, e := range stack.Entries {
				if e.IsDue(now) {
					due++
				}
				levelSum += e.KnowledgeLevel
			}
			mean := 0.0
			if len(stack.Entries) > 0 {
				mean = levelSum / float64(len(stack.Entries))
			}
			totalEntries += len(stack.Entries)
			fmt.Fprintf(out, "%-24s %4d entries  %4d due  mean level %.2f\n",
				stack.Name, len(stack.Entries), due, mean)
		}
		fmt.Fprintf(out, "\n%d stacks, %d entries total\n", len(stacks), totalEntries)

		meta := st.Meta()
		goal, err := meta.DailyGoal(now)
		if err != nil {
			return err
		}
		learned, err := meta.LearnedSeconds()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "daily goal today: %d\n", goal)
		fmt.Fprintf(out, "total learning time: %s\n",
			(time.Duration(learned) * time.Second).Round(time.Second))
		return nil
	},
}
