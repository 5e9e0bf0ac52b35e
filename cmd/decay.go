package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gurkenlor3nz/vokaba/internal/decay"
)

var decayCmd = &cobra.Command{
	Use:   "decay",
	Short: "Apply pending knowledge decay",
	Long:  "Lowers every entry's knowledge level by the daily rate per elapsed day since the last run. With --daemon, keeps running and repeats the job once a day.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		job := decay.New(st.Stacks(), st.Meta(), logger)

		daemon, _ := cmd.Flags().GetBool("daemon")
		if !daemon {
			days, err := job.Run()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d day(s) of decay\n", days)
			return nil
		}

		at, _ := cmd.Flags().GetString("at")
		sched, err := job.Schedule(at)
		if err != nil {
			return err
		}
		defer sched.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	decayCmd.Flags().Bool("daemon", false, "Keep running and apply decay daily")
	decayCmd.Flags().String("at", "04:00", "Local time of day for the daily run")
}
