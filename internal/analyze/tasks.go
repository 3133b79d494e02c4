package analyze

import (
	"path/filepath"
	"strings"
)

// DefaultTasks returns the analysis task descriptions used when the
// request names none. The base tasks fit any document; format-specific
// ones are appended from the filename extension.
func DefaultTasks(filename string) []string {
	tasks := []string{
		"Extract and summarize key information from the document",
		"Identify main topics and themes discussed",
		"Find important dates, names, and numerical data",
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		tasks = append(tasks,
			"Analyze document structure and organization",
			"Check for tables, figures, and their relevance")
	case ".docx", ".doc", ".pages":
		tasks = append(tasks,
			"Review document formatting and style consistency",
			"Identify action items and conclusions")
	case ".txt", ".md", ".markdown":
		tasks = append(tasks,
			"Analyze writing style and tone",
			"Identify key concepts and definitions")
	}
	return tasks
}
