package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gurkenlor3nz/vokaba/internal/session"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

var addCmd = &cobra.Command{
	Use:   "add <stack> <own> <foreign> [third]",
	Short: "Add an entry to a stack",
	Long:  "Adds a flashcard entry. The stack may be referenced by ID or by unique name.",
	Args:  cobra.RangeArgs(3, 4),
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
		matched, err := session.ResolveStacks(stacks, args[0])
		if err != nil {
			return err
		}
		if len(matched) != 1 {
			return fmt.Errorf("%q does not name a single stack", args[0])
		}

		info, _ := cmd.Flags().GetString("info")
		e := &vocab.Entry{
			StackID:     matched[0].ID,
			OwnText:     args[1],
			ForeignText: args[2],
			Info:        info,
		}
		if len(args) == 4 {
			e.ThirdText = args[3]
		}
		if err := st.Stacks().AddEntry(e); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "added entry", e.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().String("info", "", "Free-form note shown with the entry")
}
