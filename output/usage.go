// Package output renders rate-limit usage snapshots for embedding
// programs.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coinlens/coinlens/ratelimit"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// FormatUsage renders a usage snapshot in the requested format.
func FormatUsage(format Format, snap ratelimit.UsageSnapshot) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatTable, "":
		return usageTable(snap), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func usageTable(snap ratelimit.UsageSnapshot) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Horizon", "Used", "Limit", "Remaining"})

	t.AppendRow(usageRow("minute", snap.MinuteUsed, snap.MinuteLimit))
	t.AppendRow(usageRow("day", snap.DayUsed, snap.DayLimit))
	t.AppendRow(usageRow("month", snap.MonthUsed, snap.MonthLimit))

	return t.Render()
}

func usageRow(horizon string, used, limit int) table.Row {
	remaining := "-"
	if limit > 0 {
		left := limit - used
		if left < 0 {
			left = 0
		}
		remaining = fmt.Sprintf("%d", left)
	}
	return table.Row{horizon, used, limit, remaining}
}
