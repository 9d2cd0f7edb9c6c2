package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// maxLabelWidth truncates long labels (pasted specs without a title).
const maxLabelWidth = 60

func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the recall list of recent imports",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent imports, newest first",
			Args:  cobra.NoArgs,
			RunE:  c.runHistoryList,
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove one import from the recall list",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runHistoryRemove,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every import from the recall list",
			Args:  cobra.NoArgs,
			RunE:  c.runHistoryClear,
		},
	)

	return cmd
}

func (c *CLI) runHistoryList(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	hist, err := c.openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	entries, err := hist.store.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(c.out, "No recent imports")
		return nil
	}

	c.printEntries(entries)
	return nil
}

func (c *CLI) printEntries(entries []domain.HistoryEntry) {
	w := tabwriter.NewWriter(c.out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, headerStyle.Render("ID")+"\t"+headerStyle.Render("Kind")+"\t"+headerStyle.Render("Label")+"\t"+headerStyle.Render("Added")+"\t")

	for _, e := range entries {
		label := strings.Join(strings.Fields(e.DisplayLabel()), " ")
		if len(label) > maxLabelWidth {
			label = label[:maxLabelWidth-3] + "..."
		}

		added := time.UnixMilli(e.CreatedAt).Format("2006-01-02 15:04")

		_, _ = fmt.Fprintln(w, idStyle.Render(strconv.FormatInt(e.CreatedAt, 10))+"\t"+kindStyle.Render(string(e.SourceKind))+"\t"+label+"\t"+dateStyle.Render(added)+"\t")
	}

	_ = w.Flush()
}

func (c *CLI) runHistoryRemove(cmd *cobra.Command, args []string) error {
	createdAt, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	hist, err := c.openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	if _, ok, err := hist.store.Get(cmd.Context(), createdAt); err != nil {
		return err
	} else if !ok {
		return domain.ErrEntryNotFound
	}

	if _, err := hist.store.Remove(cmd.Context(), createdAt); err != nil {
		return err
	}

	c.log.Infof("Removed %d from the recall list", createdAt)
	return nil
}

func (c *CLI) runHistoryClear(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	hist, err := c.openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	if err := hist.store.Clear(cmd.Context()); err != nil {
		return err
	}

	c.log.Infof("Recall list cleared")
	return nil
}
