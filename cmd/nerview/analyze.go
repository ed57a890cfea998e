package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/pkg/highlight"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/nlp"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error configuring nerview: %w", err)
	}
	config.SetLogLevel(cfg)

	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to analyze")
	}

	response, err := nlp.NewClient(&cfg.NLP).Analyze(cmd.Context(), text)
	if err != nil {
		fmt.Fprintln(os.Stderr, models.AnalysisFailedMessage)
		return err
	}

	return printAnalysis(cmd.OutOrStdout(), text, response, selected)
}

// printAnalysis writes text with each entity marked as [text](LABEL), a
// selected entity as [*text*](LABEL), then the counts and the grouped entities.
func printAnalysis(
	w io.Writer,
	text string,
	response *models.AnalyzeResponse,
	selected string,
) error {
	segments, err := highlight.Segment(text, response.Entities, selected)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, s := range segments {
		switch {
		case !s.IsEntity():
			sb.WriteString(s.Content)
		case s.Selected:
			fmt.Fprintf(&sb, "[*%s*](%s)", s.Content, s.Label)
		default:
			fmt.Fprintf(&sb, "[%s](%s)", s.Content, s.Label)
		}
	}
	sb.WriteString("\n")

	groups := highlight.Group(response.Entities)
	if len(groups) == 0 {
		sb.WriteString("\nNo entities found.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString("\nSummary:\n")
	for _, c := range highlight.Summarize(groups, response.Counts) {
		fmt.Fprintf(&sb, "  %s: %d\n", c.Label, c.Count)
	}

	sb.WriteString("\nEntities:\n")
	for _, g := range groups {
		fmt.Fprintf(&sb, "  %s (%d)\n", g.Label, len(g.Texts))
		for _, t := range g.Texts {
			fmt.Fprintf(&sb, "    - %s\n", t)
		}
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
