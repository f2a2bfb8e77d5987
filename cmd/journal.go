package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/editor"
	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	tmpl "github.com/chris-regnier/wellnessctl/internal/template"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	journalTitle   string
	journalTags    string
	journalPrivate bool
	journalPrompts string

	journalListFrom   string
	journalListTo     string
	journalListTag    string
	journalListLimit  int
	journalListOffset int
	journalIDOnly     bool

	journalContentOnly bool
	journalForce       bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [content...]",
	Short: "Write a journal entry",
	Long: `Write a journal entry. Its sentiment is scored and stored with it.

If content is provided as arguments, it is used directly.
If "-" is provided, content is read from stdin.
If no content is provided, your editor is opened; a leading "# " heading
becomes the title. --prompt fills the draft with journaling prompts
(see 'wellnessctl journal prompts').`,
	Example: `  wellnessctl journal "Grateful for a calm walk after work"
  wellnessctl journal --prompt gratitude,reflection
  wellnessctl journal --title "Evening" --tags gratitude,walks Feeling good today
  echo "piped content" | wellnessctl journal -
  wellnessctl journal`,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := journalTitle
		var content string

		switch {
		case len(args) == 1 && args[0] == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)

		case len(args) > 0:
			content = strings.Join(args, " ")

		default:
			draft, scaffold, err := journalDraft(cmd.Context(), title, tmpl.ParseNames(journalPrompts), time.Now())
			if err != nil {
				return err
			}
			edited, changed, err := editor.Edit(cmd.Context(), editor.ResolveEditor(appConfig.Editor), draft)
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if !changed {
				return errors.New("empty content, nothing saved")
			}
			parsedTitle, body := draftContent(edited, scaffold)
			if parsedTitle != "" {
				title = parsedTitle
			}
			content = body
		}

		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		return journalRun(cmd.Context(), os.Stdout, journal.Input{
			UserID:  u.ID,
			Title:   title,
			Content: content,
			Tags:    journal.ParseTags(journalTags),
			Private: journalPrivate,
		})
	},
}

// journalDraft builds the editor draft, rendering the named prompts for the
// current user. scaffold is the rendered prompt text alone.
func journalDraft(ctx context.Context, title string, prompts []string, now time.Time) (draft, scaffold string, err error) {
	draft = editor.Draft(title)
	if len(prompts) == 0 {
		return draft, "", nil
	}
	u, err := currentUser(ctx)
	if err != nil {
		return "", "", err
	}
	today, err := store.LoadSamples(ctx, u.ID, storage.LastDays(1, now))
	if err != nil {
		return "", "", err
	}
	var latest *mood.Sample
	if len(today) > 0 {
		latest = &today[len(today)-1]
	}
	scaffold, err = tmpl.Compose(tmpl.Builtin(), prompts, tmpl.Vars(now, u.DisplayName(), latest))
	if err != nil {
		return "", "", err
	}
	return draft + "\n" + scaffold, scaffold, nil
}

// draftContent parses an edited draft. Prompt lines the user left unchanged
// are dropped so only their own writing is stored and scored.
func draftContent(edited, scaffold string) (title, content string) {
	title, body := editor.Parse(edited)
	return title, editor.StripScaffold(body, scaffold)
}

var journalPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List journaling prompts",
	Long:  "List the prompts that 'wellnessctl journal --prompt' can add to a new entry.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return journalPromptsRun(os.Stdout)
	},
}

func journalPromptsRun(w io.Writer) error {
	prompts := tmpl.Builtin().Sorted()
	if jsonOutput {
		type promptJSON struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Content     string `json:"content"`
		}
		out := make([]promptJSON, len(prompts))
		for i, p := range prompts {
			out[i] = promptJSON{Name: p.Name, Description: p.Description, Content: p.Content}
		}
		return ui.FormatJSON(w, out)
	}
	for _, p := range prompts {
		fmt.Fprintf(w, "  %-15s %s\n", p.Name, p.Description)
	}
	return nil
}

func journalRun(ctx context.Context, w io.Writer, in journal.Input) error {
	e, err := svc.SubmitJournal(ctx, in)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, e)
	}
	ui.FormatJournalCreated(w, e)
	return nil
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List journal entries with sentiment and preview, newest first.",
	Example: `  wellnessctl journal list
  wellnessctl journal list --from 2026-03-01 --to 2026-03-31
  wellnessctl journal list --tag gratitude --limit 10
  wellnessctl journal list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := storage.JournalListOptions{
			Tag:    strings.ToLower(strings.TrimSpace(journalListTag)),
			Limit:  journalListLimit,
			Offset: journalListOffset,
		}
		if journalListFrom != "" {
			t, err := parseDateFlag("from", journalListFrom)
			if err != nil {
				return err
			}
			opts.Range.Start = &t
		}
		if journalListTo != "" {
			t, err := parseDateFlag("to", journalListTo)
			if err != nil {
				return err
			}
			opts.Range.End = &t
		}
		return journalListRun(cmd.Context(), os.Stdout, opts, journalIDOnly)
	},
}

func journalListRun(ctx context.Context, w io.Writer, opts storage.JournalListOptions, idOnly bool) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	entries, err := store.ListJournalEntries(ctx, u.ID, opts)
	if err != nil {
		return err
	}

	if idOnly {
		for _, e := range entries {
			fmt.Fprintln(w, e.ID)
		}
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}

	var buf bytes.Buffer
	ui.FormatJournalList(&buf, entries)
	return ui.OutputOrPage(w, buf.String(), false, theme())
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journal entry",
	Long:  "Display the full content, sentiment and metadata of a journal entry.",
	Example: `  wellnessctl journal show a3kf9x2m
  wellnessctl journal show a3kf9x2m --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return journalShowRun(cmd.Context(), os.Stdout, args[0], journalContentOnly)
	},
}

// ownedEntry fetches an entry of the current user.
func ownedEntry(ctx context.Context, id string) (journal.Entry, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return journal.Entry{}, err
	}
	e, err := store.GetJournalEntry(ctx, id)
	if err == nil && e.UserID != u.ID {
		err = storage.ErrNotFound
	}
	if errors.Is(err, storage.ErrNotFound) {
		return journal.Entry{}, fmt.Errorf("journal entry %s not found", id)
	}
	return e, err
}

func journalShowRun(ctx context.Context, w io.Writer, id string, contentOnly bool) error {
	e, err := ownedEntry(ctx, id)
	if err != nil {
		return err
	}
	if contentOnly {
		fmt.Fprintln(w, e.Content)
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, e)
	}

	var buf bytes.Buffer
	ui.FormatJournalFull(&buf, e, theme().MarkdownStyle)
	return ui.OutputOrPage(w, buf.String(), false, theme())
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Long:  "Permanently delete a journal entry. Requires confirmation unless --force is used.",
	Example: `  wellnessctl journal delete a3kf9x2m
  wellnessctl journal delete a3kf9x2m --force`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := ownedEntry(ctx, args[0])
		if err != nil {
			return err
		}

		if !journalForce {
			detail := fmt.Sprintf("%s  %s\n%s", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Title, e.Preview(60))
			confirmed, err := ui.Confirm("Delete this entry? This cannot be undone.", detail, theme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}
		return journalDeleteRun(ctx, os.Stdout, e.ID)
	},
}

func journalDeleteRun(ctx context.Context, w io.Writer, id string) error {
	if _, err := ownedEntry(ctx, id); err != nil {
		return err
	}
	if err := store.DeleteJournalEntry(ctx, id); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: id, Deleted: true})
	}
	ui.FormatJournalDeleted(w, id)
	return nil
}

func init() {
	journalCmd.Flags().StringVarP(&journalTitle, "title", "t", "", "entry title (default \""+journal.DefaultTitle+"\")")
	journalCmd.Flags().StringVar(&journalTags, "tags", "", "comma separated tags")
	journalCmd.Flags().BoolVar(&journalPrivate, "private", false, "mark the entry as private")
	journalCmd.Flags().StringVar(&journalPrompts, "prompt", "", "comma separated journaling prompts for the editor draft")

	journalListCmd.Flags().StringVar(&journalListFrom, "from", "", "only entries on or after this date (YYYY-MM-DD)")
	journalListCmd.Flags().StringVar(&journalListTo, "to", "", "only entries on or before this date (YYYY-MM-DD)")
	journalListCmd.Flags().StringVar(&journalListTag, "tag", "", "only entries with this tag")
	journalListCmd.Flags().IntVar(&journalListLimit, "limit", 0, "maximum number of entries (0 = all)")
	journalListCmd.Flags().IntVar(&journalListOffset, "offset", 0, "skip this many entries")
	journalListCmd.Flags().BoolVar(&journalIDOnly, "id-only", false, "print just entry IDs, one per line")

	journalShowCmd.Flags().BoolVar(&journalContentOnly, "content-only", false, "print just the entry content")

	journalDeleteCmd.Flags().BoolVar(&journalForce, "force", false, "skip confirmation prompt")

	journalCmd.AddCommand(journalListCmd, journalShowCmd, journalDeleteCmd, journalPromptsCmd)
	rootCmd.AddCommand(journalCmd)
}
