// Package cli implements the stz command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stanza-tools/cli/internal/alias"
	"github.com/stanza-tools/cli/internal/log"
	"github.com/stanza-tools/cli/internal/messages"
	"github.com/stanza-tools/cli/internal/paths"
	"github.com/stanza-tools/cli/internal/store"
	"github.com/stanza-tools/cli/internal/ui/style"
)

// App holds the state shared across all commands. Commands receive an
// explicit App instance; there is no package-level store.
type App struct {
	Store   *store.Group
	Aliases *alias.Store
	Logger  log.Sink
	Out     io.Writer
	Err     io.Writer
	JSON    bool
}

// NewApp creates an App over the store file at path. The store initializes
// empty when the file does not exist yet.
func NewApp(path string, jsonOutput bool, out, errOut io.Writer) *App {
	g := store.NewGroup(path, store.WithCreateIfMissing())
	return &App{
		Store:   g,
		Aliases: alias.NewStore(g),
		Logger:  log.Nop{},
		Out:     out,
		Err:     errOut,
		JSON:    jsonOutput,
	}
}

// OutputJSON writes v to the app's output as indented JSON.
func (a *App) OutputJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewRootCmd builds the stz command tree.
func NewRootCmd() *cobra.Command {
	var (
		filePath   string
		jsonOutput bool
		noColor    bool
		verbose    bool
	)

	app := &App{}

	root := &cobra.Command{
		Use:   "stz",
		Short: "Manage grouped configuration and connection aliases",
		Long: `Stanza keeps key-value configuration partitioned into named groups,
persisted as a single JSON document. Aliases are a fixed group
("orgs") with a convenience surface for name=value bookkeeping.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !noColor
			style.Init(enableColor)

			path := filePath
			if path == "" {
				path = paths.StoreFilePath()
			}

			*app = *NewApp(path, jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())

			if verbose {
				if l, err := log.New(paths.LogFilePath(), log.LevelDebug); err == nil {
					app.Logger = l
				}
			}
			app.Logger.Debug("using store file %s", path)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&filePath, "file", "", "path to the store file (defaults to the user config dir)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "write a debug log to the app data dir")

	root.AddCommand(newConfigCmd(app))
	root.AddCommand(newAliasCmd(app))

	return root
}

// Execute runs the CLI and renders structured store errors through the
// message bundle.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		return fmt.Errorf("%s", messages.Render(err))
	}
	return nil
}
