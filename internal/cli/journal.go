package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/journal"
	"github.com/patchboard/atlas/pkg/project"
)

func (c *CLI) journalCommand() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the project journal as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want journal.Level
			if level != "" {
				l, err := journal.ParseFlag(level)
				if err != nil {
					return err
				}
				want = l
			}
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				// Startup records of this run go to the file first.
				if err := s.FlushJournal(); err != nil {
					return err
				}
				return printJournal(s.JournalPath(), want)
			})
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "only show one level: i, w or e")
	return cmd
}

func printJournal(path string, level journal.Level) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := journal.ReadJSON(f)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	for _, r := range records {
		if level != "" && r.Level != level {
			continue
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
