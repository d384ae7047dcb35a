package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"faceless-studio/internal/app"
	"faceless-studio/internal/tui"
)

const version = "1.0.0"

var (
	flagConfig string
	flagMock   bool

	runTitle  string
	runBrief  string
	runOut    string
	runFormat string
)

func loadApplication() (*app.Application, error) {
	// Local .env is a convenience for development setups.
	_ = godotenv.Load()

	path := flagConfig
	if path == "" {
		path = app.DefaultConfigPath()
	}
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return app.NewApplication(cfg, flagMock), nil
}

func main() {
	root := &cobra.Command{
		Use:     "studio",
		Short:   "Faceless Studio - a 7-stage YouTube content pipeline",
		Long:    "Faceless Studio turns a video title and a script brief into a complete faceless-channel production kit: script, TTS markup, storyboard, video prompts, thumbnails, retention hooks, and SEO assets.\n\nRun without arguments for the interactive TUI.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()

			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yml (default: user config dir)")
	root.PersistentFlags().BoolVar(&flagMock, "mock", false, "Use the offline mock generator")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline headless and print or export the result",
		Long:  "Run all seven stages without the TUI. The finished run is archived to history like an interactive one.\n\nExamples:\n  - studio run --title \"Why saving feels impossible\" --brief \"Lifestyle inflation for young professionals\"\n  - studio run --mock --title t --brief b --out md",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()
			return runHeadless(application)
		},
	}
	runCmd.Flags().StringVarP(&runTitle, "title", "t", "", "Video title")
	runCmd.Flags().StringVarP(&runBrief, "brief", "b", "", "Script brief")
	runCmd.Flags().StringVar(&runOut, "out", "", "Write an export file instead of printing (md|txt)")
	root.AddCommand(runCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()

			records, err := application.History.List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No completed runs yet.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  %s  %s\n", rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Title)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [record-id]",
		Short: "Export an archived run to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication()
			if err != nil {
				return err
			}
			defer application.Close()

			records, err := application.History.List()
			if err != nil {
				return err
			}
			format := app.ExportFormat(runFormat)
			if format != app.ExportText && format != app.ExportMarkdown {
				return fmt.Errorf("unsupported format: %s", runFormat)
			}
			for _, rec := range records {
				if rec.ID != args[0] {
					continue
				}
				name := app.ExportFileName(rec.Title, format)
				doc := app.ExportDocument(rec.Title, rec.Results, format)
				if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
					return err
				}
				fmt.Println("wrote", name)
				return nil
			}
			return fmt.Errorf("no record with id %s", args[0])
		},
	}
	exportCmd.Flags().StringVarP(&runFormat, "format", "f", "md", "Export format (md|txt)")
	historyCmd.AddCommand(exportCmd)
	root.AddCommand(historyCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runHeadless drives one run to completion by watching the event channel.
func runHeadless(application *app.Application) error {
	title := strings.TrimSpace(runTitle)
	brief := strings.TrimSpace(runBrief)
	if title == "" || brief == "" {
		return fmt.Errorf("both --title and --brief are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		application.Orchestrator.Reset()
	}()

	if err := application.Orchestrator.Start(app.SessionInputs{Title: title, Brief: brief}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("interrupted")
		case ev := <-application.Events:
			switch ev.Kind {
			case app.EventStageStarted:
				fmt.Fprintf(os.Stderr, "[%d/%d] %s...\n", ev.Stage.Ordinal+1, app.StageCount, ev.Stage.Label)
			case app.EventRunFailed:
				return fmt.Errorf("%s stage failed: %s", ev.Stage.Label, ev.Failure.Message())
			case app.EventRunCompleted:
				return writeHeadlessResult(title, ev.Record.Results)
			}
		}
	}
}

func writeHeadlessResult(title string, results app.SessionResults) error {
	switch runOut {
	case "":
		fmt.Print(app.ExportDocument(title, results, app.ExportText))
		return nil
	case "md", "txt":
		format := app.ExportFormat(runOut)
		name := app.ExportFileName(title, format)
		if err := os.WriteFile(name, []byte(app.ExportDocument(title, results, format)), 0o644); err != nil {
			return err
		}
		fmt.Println("wrote", name)
		return nil
	default:
		return fmt.Errorf("unsupported --out format: %s", runOut)
	}
}
