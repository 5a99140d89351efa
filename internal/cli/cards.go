package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/project"
	"github.com/patchboard/atlas/pkg/world"
)

func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import every Component ID Card in a folder",
		Long: `Import reads every *.json file in dir as a Component ID Card. Valid cards are
copied into the project and get a new entity; a card whose inbox is already
known replaces the old one. Invalid files are skipped and journaled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				prog := newProgress(loggerFromContext(cmd.Context()))
				res, err := s.Registry.IngestFolder(args[0])
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Imported %d cards", res.OK))

				printSuccess("Imported %d card(s)", res.OK)
				if res.Failed > 0 {
					printWarning("Skipped %d invalid file(s)", res.Failed)
					printNextStep("Details", appName+" journal --level w")
				}
				if res.OK > 0 {
					printNextStep("Place one", appName+" place --pick 400 300")
				}
				// Replaced cards lost their entities; keep placements in step.
				return s.SavePlacements()
			})
		},
	}
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entities with their cards and placements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				if s.World.Len() == 0 {
					printInfo("No cards imported")
					printNextStep("Import a folder", appName+" import <dir>")
					return nil
				}
				fmt.Fprintln(stdout, entityTable(s.World).Render())
				return nil
			})
		},
	}
}

// entityRows returns one row per entity: id, title, inbox, outbox, position.
func entityRows(w *world.World) [][]string {
	var rows [][]string
	for _, id := range w.IDs() {
		c, _ := w.Card(id)
		pos := "—"
		if p, ok := w.Position(id); ok {
			pos = fmt.Sprintf("%d, %d", p.X, p.Y)
		}
		title := c.Name()
		if title == "" {
			title = "—"
		}
		rows = append(rows, []string{strconv.Itoa(int(id)), title, c.Inbox, c.Outbox, pos})
	}
	return rows
}

func entityTable(w *world.World) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := entityRows(w)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Inbox", "Outbox", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 4 && rows[row][4] == "—":
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
}
