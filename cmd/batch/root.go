package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ValentinKolb/dColl/cmd/util"
	"github.com/ValentinKolb/dColl/lib/registry"
	"github.com/spf13/cobra"
)

// BatchCmd loads many documents concurrently and prints a summary
var BatchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Loads documents into a registry and prints a summary",
	Long: `Loads every file into a collection of the configured --kind. The format is
chosen by file extension (.json, .gob, .bin) and falls back to --format.
Collections are registered under the file name without extension. Prints one line
per collection (name, kind, count, sum) and the registry statistics.`,
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return util.Setup(cmd) },
	RunE:              runBatch,
}

func init() {
	BatchCmd.Flags().Bool("stats", true, util.WrapString("Print the registry statistics"))
}

type loadResult struct {
	name string
	err  error
}

func runBatch(cmd *cobra.Command, args []string) error {
	reg := registry.New()

	// load all documents concurrently, the registry is safe for concurrent use
	results := make([]loadResult, len(args))
	var wg sync.WaitGroup
	for i, path := range args {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			results[i] = loadResult{name: name, err: load(cmd, reg, name, path)}
		}(i, path)
	}
	wg.Wait()

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to load %s: %v\n", args[i], r.err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-6s %8s %12s %s\n", "NAME", "KIND", "COUNT", "SUM", "READ-ONLY")
	for _, name := range reg.Names() {
		c, ok := reg.Get(name)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%-20s %-6s %8d %12v %t\n", name, c.Kind(), c.Len(), c.Sum(), c.IsReadOnly())
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		reg.WriteStats(cmd.ErrOrStderr())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to load", failed, len(args))
	}
	return nil
}

func load(cmd *cobra.Command, reg *registry.Registry, name, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	c, err := util.LoadCollection(cmd, path)
	if err != nil {
		return err
	}
	return reg.Register(name, c)
}
