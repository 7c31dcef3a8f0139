package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stanza-tools/cli/internal/alias"
	"github.com/stanza-tools/cli/internal/store"
	"github.com/stanza-tools/cli/internal/ui/style"
)

func newAliasCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage connection aliases",
		Long: `Aliases map a short name to a connection value. They live in the
"orgs" group of the store unless --group says otherwise.`,
	}

	cmd.PersistentFlags().StringVarP(&group, "group", "g", "", `group to operate on (defaults to "orgs")`)

	cmd.AddCommand(newAliasSetCmd(app, &group))
	cmd.AddCommand(newAliasUnsetCmd(app, &group))
	cmd.AddCommand(newAliasListCmd(app, &group))
	cmd.AddCommand(newAliasResolveCmd(app, &group))

	return cmd
}

func newAliasSetCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name=value>...",
		Short: "Set aliases from name=value pairs",
		Long: `Set one or more aliases in a single write. A bare "name=" removes
the alias. The whole batch is validated before anything is applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Aliases.ParseAndUpdate(args, *group)
			if err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(applied)
			}
			for _, name := range sortedKeys(applied) {
				if applied[name] == "" {
					fmt.Fprintf(app.Out, "%s %s\n", style.Success("removed"), style.Key(name))
				} else {
					fmt.Fprintf(app.Out, "%s %s = %s\n", style.Success("set"), style.Key(name), applied[name])
				}
			}
			return nil
		},
	}
}

func newAliasUnsetCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <name>...",
		Short: "Remove aliases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Aliases.Unset(args, *group); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(map[string]any{"unset": args})
			}
			for _, name := range args {
				fmt.Fprintf(app.Out, "%s %s\n", style.Success("unset"), style.Key(name))
			}
			return nil
		},
	}
}

func newAliasListCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Aliases.Entries(*group)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return store.NewError(alias.KindNoAliasesFound)
			}

			if app.JSON {
				list, err := app.Aliases.List(*group)
				if err != nil {
					return err
				}
				return app.OutputJSON(list)
			}
			for _, e := range entries {
				fmt.Fprintf(app.Out, "%s = %s\n", style.Key(e.Key), displayValue(e.Value))
			}
			return nil
		},
	}
}

func newAliasResolveCmd(app *App, group *string) *cobra.Command {
	var byValue string

	cmd := &cobra.Command{
		Use:   "resolve [name]",
		Short: "Resolve an alias to its value, or a value back to its alias",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if byValue != "" {
				name, ok, err := app.Aliases.ByValue(byValue, *group)
				if err != nil {
					return err
				}
				if app.JSON {
					return app.OutputJSON(map[string]any{"value": byValue, "alias": name, "found": ok})
				}
				if !ok {
					fmt.Fprintln(app.Out, style.Muted("no alias for "+byValue))
					return nil
				}
				fmt.Fprintln(app.Out, name)
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("provide an alias name or --value")
			}

			value, ok, err := app.Aliases.Fetch(args[0], *group)
			if err != nil {
				return err
			}
			if app.JSON {
				return app.OutputJSON(map[string]any{"alias": args[0], "value": value, "found": ok})
			}
			if !ok {
				fmt.Fprintln(app.Out, style.Muted(args[0]+" is not an alias"))
				return nil
			}
			fmt.Fprintln(app.Out, displayValue(value))
			return nil
		},
	}

	cmd.Flags().StringVar(&byValue, "value", "", "look up the first alias pointing at this value")

	return cmd
}

// sortedKeys returns a map's keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
