package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dColl/cmd/batch"
	"github.com/ValentinKolb/dColl/cmd/coll"
	"github.com/ValentinKolb/dColl/cmd/util"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dcoll",
		Short: "read-only-gated, key-constrained collections",
		Long: fmt.Sprintf(`dcoll (v%s)

Array, map, list and set collections over an ordered key-value store,
with read-only locking, functional transforms and weighted random selection.`, Version),
		SilenceUsage:      true,
		PersistentPostRun: writeMetrics,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dcoll",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dcoll v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(coll.CollectionCommands)
	RootCmd.AddCommand(batch.BatchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupDocumentFlags(RootCmd)
}

// writeMetrics writes all process metrics in prometheus format to stderr if --metrics is set
func writeMetrics(cmd *cobra.Command, _ []string) {
	if viper.GetBool("metrics") {
		metrics.WritePrometheus(cmd.ErrOrStderr(), false)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
