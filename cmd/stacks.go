package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

var stacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "List and manage stacks",
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
		if len(stacks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no stacks yet — create one with: vokaba stacks create <name>")
			return nil
		}
		for _, stack := range stacks {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s %s → %s  (%d entries)\n",
				stack.ID, stack.Name, stack.OwnLanguage, stack.ForeignLanguage, len(stack.Entries))
		}
		return nil
	},
}

var stacksCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new stack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		own, _ := cmd.Flags().GetString("own")
		foreign, _ := cmd.Flags().GetString("foreign")
		stack := &vocab.Stack{Name: args[0], OwnLanguage: own, ForeignLanguage: foreign}
		if err := st.Stacks().CreateStack(stack); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "created stack", stack.ID)
		return nil
	},
}

var stacksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stack and all its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Stacks().DeleteStack(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted stack", args[0])
		return nil
	},
}

func init() {
	stacksCreateCmd.Flags().String("own", "", "Native language code")
	stacksCreateCmd.Flags().String("foreign", "", "Target language code")
	stacksCmd.AddCommand(stacksCreateCmd)
	stacksCmd.AddCommand(stacksDeleteCmd)
}
