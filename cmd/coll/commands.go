package coll

import (
	"fmt"

	"github.com/ValentinKolb/dColl/cmd/util"
	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/ValentinKolb/dColl/lib/collection/weighted"
	"github.com/ValentinKolb/dColl/lib/containers"
	"github.com/ValentinKolb/dColl/lib/serializer"
	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Prints the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := util.ParseKey(args[0])
			if !coll.HasKey(key) {
				return fmt.Errorf("key %s not found", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), util.FormatValue(coll.Get(key, nil)))
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := coll.Set(util.ParseKey(args[0]), util.ParseValue(args[1])); err != nil {
				return err
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	addCmd = &cobra.Command{
		Use:   "add [key] [value]",
		Short: "Adds a value, merging it with an existing value of the key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := coll.Add(util.ParseKey(args[0]), util.ParseValue(args[1])); err != nil {
				return err
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	appendCmd = &cobra.Command{
		Use:   "append [value...]",
		Short: "Appends values at the next integer index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := coll.Append(util.ParseValue(arg)); err != nil {
					return err
				}
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	removeCmd = &cobra.Command{
		Use:   "remove [key...]",
		Short: "Removes keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reindex, _ := cmd.Flags().GetBool("reindex")
			for _, arg := range args {
				var err error
				if reindex {
					_, err = coll.RemoveReindex(util.ParseKey(arg))
				} else {
					_, err = coll.Remove(util.ParseKey(arg))
				}
				if err != nil {
					return err
				}
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	replaceCmd = &cobra.Command{
		Use:   "replace [old] [new]",
		Short: "Replaces the first occurrence of a value (or the value of a key with --by-key)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			byKey, _ := cmd.Flags().GetBool("by-key")
			strict, _ := cmd.Flags().GetBool("strict")

			var (
				replaced bool
				err      error
			)
			if byKey {
				replaced, err = coll.ReplaceKey(util.ParseKey(args[0]), util.ParseValue(args[1]))
			} else {
				replaced, err = coll.ReplaceValue(util.ParseValue(args[0]), util.ParseValue(args[1]), strict)
			}
			if err != nil {
				return err
			}
			if !replaced {
				return fmt.Errorf("nothing replaced: %s not found", args[0])
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	searchCmd = &cobra.Command{
		Use:   "search [value]",
		Short: "Prints the key of the first entry holding a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			fromEnd, _ := cmd.Flags().GetBool("from-end")
			key, ok := coll.Search(util.ParseValue(args[0]), strict, fromEnd)
			if !ok {
				return fmt.Errorf("value %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Prints all keys in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for k := range coll.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	sortCmd = &cobra.Command{
		Use:   "sort",
		Short: "Sorts the entries by value or by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			by, _ := cmd.Flags().GetString("by")
			desc, _ := cmd.Flags().GetBool("desc")
			preserve, _ := cmd.Flags().GetBool("preserve-keys")
			modeName, _ := cmd.Flags().GetString("mode")

			var err error
			switch by {
			case "value":
				mode, perr := parseSortMode(modeName)
				if perr != nil {
					return perr
				}
				err = coll.SortBy(mode, desc, preserve)
			case "key":
				cmp := store.CompareKeys
				if desc {
					cmp = func(a, b store.Key) int { return store.CompareKeys(b, a) }
				}
				err = coll.SortByKey(cmp)
			default:
				return fmt.Errorf("invalid sort order %q (expected value or key)", by)
			}
			if err != nil {
				return err
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	reverseCmd = &cobra.Command{
		Use:   "reverse",
		Short: "Reverses the order of the entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preserve, _ := cmd.Flags().GetBool("preserve-keys")
			if err := coll.Reverse(preserve); err != nil {
				return err
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	filterCmd = &cobra.Command{
		Use:   "filter [value]",
		Short: "Keeps the entries equal to value (without value: removes null values)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			invert, _ := cmd.Flags().GetBool("invert")
			preserve, _ := cmd.Flags().GetBool("preserve-keys")

			var fn collection.FilterFunc
			if len(args) == 1 {
				want := util.ParseValue(args[0])
				match := collection.LooseEqual
				if strict {
					match = collection.StrictEqual
				}
				fn = func(_ store.Key, v any) bool { return match(v, want) != invert }
			} else if invert {
				fn = func(_ store.Key, v any) bool { return v == nil }
			}

			if err := coll.Filter(fn, preserve); err != nil {
				return err
			}
			return util.SaveCollection(cmd, coll)
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints count, sum, product, average, min and max of the values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			precision, _ := cmd.Flags().GetInt("precision")
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-10s %s\n", "kind", coll.Kind())
			fmt.Fprintf(out, "%-10s %d\n", "count", coll.Len())
			fmt.Fprintf(out, "%-10s %v\n", "sum", coll.Sum())
			fmt.Fprintf(out, "%-10s %v\n", "product", coll.Product(precision))
			if avg, ok := coll.Average(precision); ok {
				fmt.Fprintf(out, "%-10s %v\n", "average", avg)
			} else {
				fmt.Fprintf(out, "%-10s %s\n", "average", "-")
			}
			if lo, ok := coll.Min(); ok {
				fmt.Fprintf(out, "%-10s %s\n", "min", util.FormatValue(lo))
			}
			if hi, ok := coll.Max(); ok {
				fmt.Fprintf(out, "%-10s %s\n", "max", util.FormatValue(hi))
			}
			return nil
		},
	}
	pickCmd = &cobra.Command{
		Use:   "pick",
		Short: "Prints a random entry, chosen proportionally to its \"weight\" field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []weighted.SelectOption
			if cmd.Flags().Changed("min-weight") {
				v, _ := cmd.Flags().GetFloat64("min-weight")
				opts = append(opts, weighted.WithMinWeight(v))
			}
			if cmd.Flags().Changed("max-weight") {
				v, _ := cmd.Flags().GetFloat64("max-weight")
				opts = append(opts, weighted.WithMaxWeight(v))
			}

			src := weighted.NewRandomSource(viper.GetUint64("seed"))
			e, ok := containers.AsWeighted(coll, src).PickEntry(opts...)
			if !ok {
				return fmt.Errorf("no weighted item to pick from")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", e.Key, util.FormatValue(e.Value))
			return nil
		},
	}
	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Writes the document in another format (--to)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetString("to")
			s, err := serializer.New(to)
			if err != nil {
				return err
			}
			data, err := s.Serialize(coll.ToSnapshot())
			if err != nil {
				return err
			}
			return util.WriteDocument(cmd, viper.GetString("output"), data)
		},
	}
)

func parseSortMode(name string) (collection.SortMode, error) {
	switch name {
	case "regular":
		return collection.SortRegular, nil
	case "numeric":
		return collection.SortNumeric, nil
	case "string":
		return collection.SortString, nil
	default:
		return collection.SortRegular, fmt.Errorf("invalid sort mode %q (expected regular, numeric or string)", name)
	}
}
