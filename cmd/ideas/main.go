package main

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"ideas-para/internal/conciencia"
	"ideas-para/internal/config"
	"ideas-para/internal/openai"
	"ideas-para/internal/store"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads configuration and hydrates the persisted store from the
// configured backend. The caller keeps the store for the life of the command.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	var backend store.Backend
	switch cfg.StoreDriver {
	case "sqlite":
		backend, err = store.NewSQLiteBackend(cfg.StorePath)
	default:
		backend, err = store.NewFileBackend(cfg.StorePath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	st, err := store.Open(backend)
	if err != nil {
		return nil, nil, fmt.Errorf("hydrating store: %w", err)
	}
	return st, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Diario personal con seguimiento de emociones y ConciencIA",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		if err := st.LastSaveError(); err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		fmt.Printf("Storage ready at %s (%s)\n", cfg.StorePath, cfg.StoreDriver)
		return nil
	},
}

// entry command
var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage diary entries",
}

var entryAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Write a new entry",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		content := ""
		if len(args) > 0 {
			content = args[0]
		}
		if content == "" {
			return fmt.Errorf("entry content is required")
		}

		title, _ := cmd.Flags().GetString("title")
		emotion, _ := cmd.Flags().GetString("emotion")
		private, _ := cmd.Flags().GetBool("private")
		mood, _ := cmd.Flags().GetInt("mood")
		tagsFlag, _ := cmd.Flags().GetString("tags")

		var tags []string
		for _, tag := range strings.Split(tagsFlag, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		entry := st.SaveEntry(store.EntryDraft{
			Title:     title,
			Content:   content,
			Emotion:   emotion,
			IsPrivate: private,
			Tags:      tags,
			Mood:      mood,
		})
		if entry == nil {
			return fmt.Errorf("entry was not saved")
		}

		fmt.Printf("Saved entry %s (%s)\n", entry.ID, entry.EntryType)
		if err := st.LastSaveError(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: entry kept in memory but not persisted: %v\n", err)
		}
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		showPrivate, _ := cmd.Flags().GetBool("private")
		emotion, _ := cmd.Flags().GetString("emotion")

		entries := st.Entries()
		if emotion != "" {
			entries = st.EntriesByEmotion(emotion)
		}
		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		for _, e := range entries {
			if e.IsPrivate && !showPrivate {
				continue
			}
			marker := " "
			if e.IsPrivate {
				marker = "*"
			}
			fmt.Printf("%s %s  %-12s  %-10s  %s\n", marker, e.Date.Format("2006-01-02"), e.Emotion, e.ID[:14], e.Title)
		}
		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		st.DeleteEntry(args[0])
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// liberate command
var liberateCmd = &cobra.Command{
	Use:   "liberate [content]",
	Short: "Release a thought with a symbolic action",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		content := ""
		if len(args) > 0 {
			content = args[0]
		}
		emotion, _ := cmd.Flags().GetString("emotion")
		action, _ := cmd.Flags().GetString("action")
		keep, _ := cmd.Flags().GetBool("keep")

		switch store.LiberationAction(action) {
		case store.ActionBurn, store.ActionTear, store.ActionBury, store.ActionRelease:
		default:
			return fmt.Errorf("action must be burn, tear, bury or release")
		}

		session := st.SaveLiberationSession(store.LiberationDraft{
			Content:     content,
			Emotion:     emotion,
			Action:      store.LiberationAction(action),
			IsDestroyed: true,
			KeepContent: keep,
		})
		fmt.Printf("Liberated (%s) session %s\n", session.Action, session.ID)
		return nil
	},
}

// streak and progress
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the consecutive-day writing streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		fmt.Printf("%d day(s)\n", st.StreakDays())
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show aggregate progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		p := st.Progress()
		fmt.Printf("Entries:             %d\n", p.TotalEntries)
		fmt.Printf("Consecutive days:    %d\n", p.ConsecutiveDays)
		fmt.Printf("Favorite emotion:    %s\n", p.FavoriteEmotion)
		fmt.Printf("Liberation sessions: %d\n", p.LiberationSessions)
		fmt.Printf("Last active:         %s\n", p.LastActiveDate)
		if len(p.CategoriesExplored) > 0 {
			fmt.Printf("Categories explored: %s\n", strings.Join(p.CategoriesExplored, ", "))
		}
		return nil
	},
}

// chat command
var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Talk with ConciencIA",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		message := args[0]

		if st.Settings().APIKey == "" {
			// Without a credential the simulated companion answers.
			responder := conciencia.NewMockResponder()
			st.AddChatMessage(store.ChatDraft{Role: "user", Content: message})
			reply, err := responder.Respond(cmd.Context(), message)
			if err != nil {
				return err
			}
			st.AddChatMessage(store.ChatDraft{Role: "assistant", Content: reply})
			fmt.Println(reply)
			return nil
		}

		gatewayURL, _ := cmd.Flags().GetString("gateway")
		if gatewayURL == "" {
			gatewayURL = "http://localhost:" + cfg.Port
		}
		svc := conciencia.NewService(st, gatewayURL, openai.NewClient(cfg.OpenAIBaseURL))

		result, err := svc.Converse(context.Background(), message)
		if err != nil {
			return err
		}
		fmt.Println(result.Reply)
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export non-private entries as an HTML digest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		digest, err := renderDigest(st.Entries())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			_, err = os.Stdout.Write(digest)
			return err
		}
		if err := os.WriteFile(args[0], digest, 0644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

// renderDigest renders the non-private entries into a standalone HTML
// document. Entry content is Markdown; titles and emotions are plain text and
// get escaped.
func renderDigest(entries []store.DiaryEntry) ([]byte, error) {
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head><meta charset=\"utf-8\"><title>Ideas para…</title></head>\n<body>\n")
	md := goldmark.New()
	for _, entry := range entries {
		if entry.IsPrivate {
			continue
		}
		fmt.Fprintf(&out, "<article>\n<h2>%s</h2>\n<p><time>%s</time> · %s</p>\n",
			html.EscapeString(entry.Title), entry.Date.Format("2006-01-02"), html.EscapeString(entry.Emotion))
		if err := md.Convert([]byte(entry.Content), &out); err != nil {
			return nil, fmt.Errorf("rendering entry %s: %w", entry.ID, err)
		}
		out.WriteString("</article>\n")
	}
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func init() {
	entryAddCmd.Flags().String("title", "", "entry title")
	entryAddCmd.Flags().String("emotion", "", "emotion tag")
	entryAddCmd.Flags().String("tags", "", "comma-separated tags")
	entryAddCmd.Flags().Bool("private", false, "mark the entry private")
	entryAddCmd.Flags().Int("mood", 0, "mood on a 1-10 scale")

	entryListCmd.Flags().Bool("private", false, "include private entries")
	entryListCmd.Flags().String("emotion", "", "filter by emotion")

	liberateCmd.Flags().String("emotion", "", "emotion tag")
	liberateCmd.Flags().String("action", "release", "burn, tear, bury or release")
	liberateCmd.Flags().Bool("keep", false, "keep a copy of the released text")

	chatCmd.Flags().String("gateway", "", "gateway base URL (default local gateway)")

	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryDeleteCmd)
	rootCmd.AddCommand(initCmd, entryCmd, liberateCmd, streakCmd, progressCmd, chatCmd, exportCmd)
}
