// Package cli implements the atlas command-line interface.
//
// Every command opens the project under --root (the working directory by
// default), which runs startup: persisted cards are loaded, cards whose
// folders vanished are culled, and placements are restored. Journal records
// produced during the command are appended to the project journal on exit.
//
// # Commands
//
//   - import: ingest a folder of Component ID Cards
//   - list: show entities and their placements
//   - place: drop an entity at a canvas click position
//   - render: draw placed components to SVG or PNG
//   - patchbay: draw the channel wiring between cards with Graphviz
//   - project: show how a World point maps to the canvas and back
//   - journal: print the project journal
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/buildinfo"
	"github.com/patchboard/atlas/pkg/config"
	"github.com/patchboard/atlas/pkg/project"
)

const appName = "atlas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives status lines and command output.
var stdout io.Writer = os.Stdout

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	root   string
	forced bool // level set on the command line, config must not override
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. It takes precedence over the
// project config's log level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.forced = true
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Atlas places patchboard components on a zoomable canvas",
		Long:         `Atlas imports Component ID Cards from a patchboard project, places each component in a shared World coordinate space and renders the canvas or the channel wiring between components.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.root, "root", ".", "project root directory")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.patchbayCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.journalCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// withSession opens the project, runs fn and appends the session journal to
// the project journal, even when fn fails.
func (c *CLI) withSession(ctx context.Context, fn func(*project.Session) error) (err error) {
	logger := loggerFromContext(ctx)
	if cfg, cerr := config.Load(project.Dir(c.root)); cerr == nil && !c.forced {
		if level, perr := log.ParseLevel(cfg.Log.Level); perr == nil {
			logger.SetLevel(level)
		}
	}

	s, err := project.Open(c.root, logger)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := s.FlushJournal(); ferr != nil && err == nil {
			err = ferr
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}
