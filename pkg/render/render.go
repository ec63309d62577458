// Package render turns a backup report into human- or machine-readable
// output for the CLI.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agentscan/backup-orchestrator/pkg/backup"
)

// Format selects the output representation of a report.
type Format string

const (
	JSONFormat     Format = "json"
	TextFormat     Format = "text"
	MarkdownFormat Format = "markdown"
)

// ParseFormat maps a user-supplied format name to a Format, defaulting to
// JSON.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "text":
		return TextFormat
	case "markdown", "md":
		return MarkdownFormat
	default:
		return JSONFormat
	}
}

// Render serializes a report in the requested format.
func Render(rep *backup.Report, format Format) ([]byte, error) {
	switch format {
	case TextFormat:
		return renderText(rep), nil
	case MarkdownFormat:
		return renderMarkdown(rep), nil
	case JSONFormat:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func renderText(rep *backup.Report) []byte {
	var b strings.Builder

	b.WriteString("Backup Orchestration Report\n")
	b.WriteString("===========================\n\n")
	b.WriteString(fmt.Sprintf("Run ID: %s\n", rep.RunID))
	b.WriteString(fmt.Sprintf("Started At: %s\n", rep.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Environment: %s\n", rep.Environment))
	b.WriteString(fmt.Sprintf("Cluster: %s\n", rep.ClusterName))
	b.WriteString(fmt.Sprintf("Overall Status: %s\n\n", rep.OverallStatus))

	if len(rep.Steps) > 0 {
		b.WriteString("Operations:\n")
		for _, step := range rep.Steps {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", step.Status, step.Operation))
			for _, k := range detailKeys(step.Detail) {
				b.WriteString(fmt.Sprintf("    %s: %v\n", k, step.Detail[k]))
			}
		}
		b.WriteString("\n")
	}

	if rep.Error != "" {
		b.WriteString(fmt.Sprintf("Error: %s\n", rep.Error))
	}

	return []byte(b.String())
}

func renderMarkdown(rep *backup.Report) []byte {
	var b strings.Builder

	b.WriteString("# Backup Orchestration Report\n\n")
	b.WriteString(fmt.Sprintf("**Run ID:** %s  \n", rep.RunID))
	b.WriteString(fmt.Sprintf("**Started At:** %s  \n", rep.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("**Environment:** %s  \n", rep.Environment))
	b.WriteString(fmt.Sprintf("**Cluster:** %s  \n", rep.ClusterName))
	b.WriteString(fmt.Sprintf("**Overall Status:** %s\n\n", rep.OverallStatus))

	if len(rep.Steps) > 0 {
		b.WriteString("## Operations\n\n")
		b.WriteString("| Status | Operation |\n")
		b.WriteString("|--------|-----------|\n")
		for _, step := range rep.Steps {
			b.WriteString(fmt.Sprintf("| %s | %s |\n", step.Status, step.Operation))
		}
		b.WriteString("\n")
	}

	if rep.Error != "" {
		b.WriteString(fmt.Sprintf("## Error\n\n%s\n", rep.Error))
	}

	return []byte(b.String())
}

// detailKeys returns detail keys in stable order for deterministic output.
func detailKeys(detail backup.Detail) []string {
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
