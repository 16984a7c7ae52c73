// package formatter exports hydrated lists to plain text, Markdown, CSV and JSON, and renders terminal cards
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

const dateLayout = "Jan 2, 2006"

// ExportToCSV converts a list to CSV with columns: Rank, Title, Description, ID
func ExportToCSV(list models.TopFiveList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Title", "Description", "ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range list.Items {
		record := []string{
			strconv.Itoa(item.Rank),
			item.Title,
			deref(item.Description),
			item.ID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a list as a Markdown document with a ranked, numbered item list
func ExportToMarkdown(list models.TopFiveList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", list.Title)

	if list.Description != nil && *list.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", *list.Description)
	}

	fmt.Fprintf(&buf, "**By**: %s\n", author(list))
	if list.Category != nil {
		fmt.Fprintf(&buf, "**Category**: %s\n", *list.Category)
	}
	fmt.Fprintf(&buf, "**Votes**: %d\n", list.VoteCount)
	fmt.Fprintf(&buf, "**Created**: %s\n\n", list.CreatedAt.Format(dateLayout))

	buf.WriteString("## Items\n\n")
	for _, item := range list.Items {
		fmt.Fprintf(&buf, "%d. **%s**", item.Rank, item.Title)
		if item.Description != nil && *item.Description != "" {
			fmt.Fprintf(&buf, " - %s", *item.Description)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a list to plain text
func ExportToText(list models.TopFiveList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "List: %s\n", list.Title)
	if list.Description != nil && *list.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", *list.Description)
	}
	fmt.Fprintf(&buf, "By: %s\n", author(list))
	fmt.Fprintf(&buf, "Votes: %d  Comments: %d\n\n", list.VoteCount, list.CommentCount)

	for _, item := range list.Items {
		fmt.Fprintf(&buf, "%d. %s\n", item.Rank, item.Title)
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes a backend result in its { data, error } shape.
func ExportToJSON[T any](result shared.Result[T], pretty bool) ([]byte, error) {
	data, err := shared.MarshalJSON(result, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ItemsFile    string
	MetadataFile string
}

// WriteCSVExport exports a list to CSV with an accompanying metadata JSON file.
//
// Defaults to the list ID as the base filename & creates {base}_items.csv and {base}_metadata.json
func WriteCSVExport(list models.TopFiveList, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = list.ID
	}

	csvData, err := ExportToCSV(list)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	itemsFile := baseFilepath + "_items.csv"
	if err := os.WriteFile(itemsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := shared.MarshalJSON(list.List, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ItemsFile:    itemsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport writes {dir}/README.md, creating dir. The directory defaults to the list ID.
func WriteMarkdownExport(list models.TopFiveList, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = list.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a list to plain text.
//
// Defaults to {list.ID}.txt as the filename.
func WriteTextExport(list models.TopFiveList, path string) (string, error) {
	if path == "" {
		path = list.ID + ".txt"
	}

	textData, err := ExportToText(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// Age renders how long ago t was, relative to now, at a coarse grain.
func Age(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	default:
		return t.Format(dateLayout)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func author(list models.TopFiveList) string {
	if list.User != nil && list.User.Username != "" {
		return list.User.Username
	}
	return list.UserID
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
