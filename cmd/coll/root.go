package coll

import (
	"github.com/ValentinKolb/dColl/cmd/util"
	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/spf13/cobra"
)

var (
	// coll is the collection loaded from the input document
	coll collection.ICollection

	// CollectionCommands represents the collection command group
	CollectionCommands = &cobra.Command{
		Use:   "coll",
		Short: "Query and modify collection documents",
		Long: `Loads a document (--input, default stdin) into a collection of the given
--kind, applies a single operation and writes the result (--output, default stdout).
Queries print their result instead of the document.`,
		PersistentPreRunE: loadCollection,
	}
)

func init() {
	// Add subcommands
	CollectionCommands.AddCommand(getCmd)
	CollectionCommands.AddCommand(setCmd)
	CollectionCommands.AddCommand(addCmd)
	CollectionCommands.AddCommand(appendCmd)
	CollectionCommands.AddCommand(removeCmd)
	CollectionCommands.AddCommand(replaceCmd)
	CollectionCommands.AddCommand(searchCmd)
	CollectionCommands.AddCommand(keysCmd)
	CollectionCommands.AddCommand(sortCmd)
	CollectionCommands.AddCommand(reverseCmd)
	CollectionCommands.AddCommand(filterCmd)
	CollectionCommands.AddCommand(statsCmd)
	CollectionCommands.AddCommand(pickCmd)
	CollectionCommands.AddCommand(convertCmd)

	// Add command specific flags
	removeCmd.Flags().Bool("reindex", false, util.WrapString("Renumber the remaining entries (list and set only)"))
	replaceCmd.Flags().Bool("by-key", false, util.WrapString("Treat the first argument as key instead of the old value"))
	replaceCmd.Flags().Bool("strict", false, util.WrapString("Compare values by type and value"))
	searchCmd.Flags().Bool("strict", false, util.WrapString("Compare values by type and value"))
	searchCmd.Flags().Bool("from-end", false, util.WrapString("Search from the last entry"))
	sortCmd.Flags().String("by", "value", util.WrapString("Sort by value or key"))
	sortCmd.Flags().String("mode", "regular", util.WrapString("How values are compared (regular, numeric, string)"))
	sortCmd.Flags().Bool("desc", false, util.WrapString("Sort in descending order"))
	sortCmd.Flags().Bool("preserve-keys", false, util.WrapString("Keep the keys instead of renumbering"))
	reverseCmd.Flags().Bool("preserve-keys", false, util.WrapString("Keep the keys instead of renumbering"))
	filterCmd.Flags().Bool("strict", false, util.WrapString("Compare values by type and value"))
	filterCmd.Flags().Bool("invert", false, util.WrapString("Keep the entries that do not match"))
	filterCmd.Flags().Bool("preserve-keys", false, util.WrapString("Keep the keys instead of renumbering"))
	statsCmd.Flags().Int("precision", 2, util.WrapString("Decimal places of product and average (-1 for no rounding)"))
	pickCmd.Flags().Float64("min-weight", 0, util.WrapString("Minimum weight of a candidate (only used if set)"))
	pickCmd.Flags().Float64("max-weight", 0, util.WrapString("Maximum weight of a candidate (only used if set)"))
	convertCmd.Flags().String("to", "json", util.WrapString("Format of the output document (json, gob, binary)"))
}

// loadCollection binds the flags and loads the input document
func loadCollection(cmd *cobra.Command, _ []string) error {
	if err := util.Setup(cmd); err != nil {
		return err
	}

	var err error
	coll, err = util.LoadCollection(cmd, util.GetConfig().Input)
	return err
}
