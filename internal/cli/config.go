package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stanza-tools/cli/internal/store"
	"github.com/stanza-tools/cli/internal/ui/style"
)

func newConfigCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write grouped configuration",
	}

	cmd.PersistentFlags().StringVarP(&group, "group", "g", "", "group to operate on (default group when omitted)")

	cmd.AddCommand(newConfigGetCmd(app, &group))
	cmd.AddCommand(newConfigSetCmd(app, &group))
	cmd.AddCommand(newConfigUnsetCmd(app, &group))
	cmd.AddCommand(newConfigListCmd(app, &group))
	cmd.AddCommand(newConfigClearCmd(app, &group))
	cmd.AddCommand(newConfigEditCmd(app, &group))

	return cmd
}

// routeGroup points the store's unqualified operations at the requested
// group. An empty flag leaves the builtin default group active.
func routeGroup(app *App, group string) error {
	if group == "" {
		return nil
	}
	return app.Store.SetDefaultGroup(group)
}

func newConfigGetCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a config key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Store.Read(); err != nil {
				return err
			}
			if err := routeGroup(app, *group); err != nil {
				return err
			}

			key := args[0]
			value, ok := app.Store.Get(key)

			if app.JSON {
				return app.OutputJSON(map[string]any{
					"group": app.Store.DefaultGroup(),
					"key":   key,
					"value": value,
					"set":   ok,
				})
			}

			if !ok {
				fmt.Fprintln(app.Out, style.Muted(key+" is not set"))
				return nil
			}
			fmt.Fprintln(app.Out, displayValue(value))
			return nil
		},
	}
}

func newConfigSetCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key and persist the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := routeGroup(app, *group); err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := app.Store.UpdateValue(key, value, ""); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(map[string]any{
					"group": app.Store.DefaultGroup(),
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(app.Out, "%s %s = %s\n", style.Success("set"), style.Key(key), value)
			return nil
		},
	}
}

func newConfigUnsetCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>...",
		Short: "Remove config keys and persist the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Store.Read(); err != nil {
				return err
			}
			if err := routeGroup(app, *group); err != nil {
				return err
			}

			for _, key := range args {
				app.Store.Unset(key)
			}
			if err := app.Store.Write(); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(map[string]any{
					"group": app.Store.DefaultGroup(),
					"unset": args,
				})
			}
			for _, key := range args {
				fmt.Fprintf(app.Out, "%s %s\n", style.Success("unset"), style.Key(key))
			}
			return nil
		},
	}
}

func newConfigListCmd(app *App, group *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List config entries, one group or the whole document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Store.Read(); err != nil {
				return err
			}

			var doc any
			if *group != "" {
				gc, ok := app.Store.GetGroup(*group)
				if !ok {
					doc = map[string]any{}
				} else {
					doc = gc.ToMap()
				}
			} else {
				doc = app.Store.ToObject()
			}

			switch {
			case app.JSON || format == "json":
				return app.OutputJSON(doc)
			case format == "yaml":
				out, err := yaml.Marshal(doc)
				if err != nil {
					return err
				}
				fmt.Fprint(app.Out, string(out))
				return nil
			case format != "":
				return fmt.Errorf("unknown format %q (expected json or yaml)", format)
			}

			if *group != "" {
				gc, ok := app.Store.GetGroup(*group)
				if !ok || gc.Len() == 0 {
					fmt.Fprintln(app.Out, style.Muted("no entries"))
					return nil
				}
				printGroup(app, *group, gc)
				return nil
			}

			obj := app.Store.ToObject()
			if len(obj) == 0 {
				fmt.Fprintln(app.Out, style.Muted("no entries"))
				return nil
			}
			contents, err := app.Store.Read()
			if err != nil {
				return err
			}
			for i, name := range contents.Keys() {
				if i > 0 {
					fmt.Fprintln(app.Out)
				}
				gc, _ := app.Store.GetGroup(name)
				printGroup(app, name, gc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml")

	return cmd
}

func printGroup(app *App, name string, gc *store.Contents) {
	fmt.Fprintln(app.Out, style.Header("["+name+"]"))
	for _, e := range gc.Entries() {
		fmt.Fprintf(app.Out, "  %s = %s\n", style.Key(e.Key), displayValue(e.Value))
	}
}

func newConfigClearCmd(app *App, group *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove a whole group and persist the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Store.Read(); err != nil {
				return err
			}
			if err := routeGroup(app, *group); err != nil {
				return err
			}

			app.Store.Clear()
			if err := app.Store.Write(); err != nil {
				return err
			}

			if app.JSON {
				return app.OutputJSON(map[string]any{"cleared": app.Store.DefaultGroup()})
			}
			fmt.Fprintf(app.Out, "%s %s\n", style.Success("cleared"), style.Header(app.Store.DefaultGroup()))
			return nil
		},
	}
}

// displayValue renders a stored value for terminal output. Scalars print
// bare; structures print as compact JSON.
func displayValue(v any) string {
	switch v.(type) {
	case string, bool, float64, int, int64, nil:
		return fmt.Sprintf("%v", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
