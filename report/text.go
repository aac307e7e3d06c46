package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/viant/patternlint/engine"
	"github.com/viant/patternlint/issue"
)

const (
	positionWidth = 9
	severityWidth = 8
	typeWidth     = 22
	indent        = "  "
)

// textWriter writes a human readable report grouped by file
type textWriter struct {
	width      int
	file       *color.Color
	faint      *color.Color
	title      *color.Color
	severities map[issue.Severity]*color.Color
}

func newTextWriter(settings *settings) *textWriter {
	ret := &textWriter{
		width: settings.width,
		file:  color.New(color.FgCyan, color.Bold),
		faint: color.New(color.Faint),
		title: color.New(color.Bold),
		severities: map[issue.Severity]*color.Color{
			issue.Critical: color.New(color.FgMagenta, color.Bold),
			issue.High:     color.New(color.FgRed, color.Bold),
			issue.Medium:   color.New(color.FgYellow),
			issue.Low:      color.New(color.FgBlue),
		},
	}
	for _, candidate := range ret.colors() {
		if settings.color {
			candidate.EnableColor()
		} else {
			candidate.DisableColor()
		}
	}
	return ret
}

func (t *textWriter) colors() []*color.Color {
	result := []*color.Color{t.file, t.faint, t.title}
	for _, candidate := range t.severities {
		result = append(result, candidate)
	}
	return result
}

func (t *textWriter) Write(w io.Writer, result *engine.Result) error {
	writer := bufio.NewWriter(w)
	if project := result.Project; project != nil {
		fmt.Fprintf(writer, "%v %v\n\n", t.title.Sprint(project.Name), t.faint.Sprintf("(%v)", project.Root))
	}
	currentFile := ""
	for i := range result.Issues {
		item := &result.Issues[i]
		if item.File != currentFile {
			if currentFile != "" {
				writer.WriteString("\n")
			}
			currentFile = item.File
			writer.WriteString(t.file.Sprint(currentFile) + "\n")
		}
		t.writeIssue(writer, item)
	}
	if len(result.Issues) > 0 {
		writer.WriteString("\n")
	}
	t.writeSummary(writer, result)
	t.writeSkipped(writer, result)
	return writer.Flush()
}

func (t *textWriter) writeIssue(w *bufio.Writer, item *issue.Issue) {
	position := fmt.Sprintf("%v:%v", item.Location.StartLine, item.Location.StartColumn)
	prefix := indent + runewidth.FillRight(position, positionWidth) + " "
	severity := runewidth.FillRight(string(item.Severity), severityWidth)
	kind := runewidth.FillRight(string(item.Type), typeWidth)
	used := runewidth.StringWidth(prefix) + severityWidth + typeWidth + 2
	w.WriteString(prefix + t.severity(item.Severity).Sprint(severity) + " " + t.faint.Sprint(kind) + " " + t.truncate(item.Description, used) + "\n")
	hint := strings.Repeat(" ", runewidth.StringWidth(prefix)) + "-> "
	w.WriteString(t.faint.Sprint(hint + t.truncate(item.Recommendation, runewidth.StringWidth(hint))) + "\n")
}

func (t *textWriter) writeSummary(w *bufio.Writer, result *engine.Result) {
	counts := issue.Count(result.Issues)
	var parts []string
	for _, severity := range []issue.Severity{issue.Critical, issue.High, issue.Medium, issue.Low} {
		if count := counts[severity]; count > 0 {
			parts = append(parts, t.severity(severity).Sprintf("%v %v", count, severity))
		}
	}
	summary := fmt.Sprintf("%v in %v of %v files", plural(len(result.Issues), "issue"), result.Analyzed, result.Files)
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	w.WriteString(t.title.Sprint("Summary: ") + summary + t.faint.Sprintf(" in %v", result.Duration.Round(time.Millisecond)) + "\n")
}

func (t *textWriter) writeSkipped(w *bufio.Writer, result *engine.Result) {
	if len(result.Skipped) > 0 {
		w.WriteString(t.title.Sprintf("Skipped %v:", plural(len(result.Skipped), "file")) + "\n")
		for _, skipped := range result.Skipped {
			w.WriteString(indent + t.truncate(skipped.Path+": "+skipped.Reason, len(indent)) + "\n")
		}
	}
	if len(result.Faults) > 0 {
		w.WriteString(t.title.Sprintf("Analyzer faults %v:", len(result.Faults)) + "\n")
		for _, fault := range result.Faults {
			w.WriteString(indent + t.truncate(fault.Path+" ["+fault.Analyzer+"]: "+fault.Reason, len(indent)) + "\n")
		}
	}
}

func (t *textWriter) severity(severity issue.Severity) *color.Color {
	if ret, ok := t.severities[severity]; ok {
		return ret
	}
	return t.faint
}

// truncate shortens text to the cells left after used, text is kept when width is unset
func (t *textWriter) truncate(text string, used int) string {
	if t.width <= 0 {
		return text
	}
	available := t.width - used
	if available < 10 {
		available = 10
	}
	return runewidth.Truncate(text, available, "...")
}

func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%v %v", count, noun)
	}
	return fmt.Sprintf("%v %vs", count, noun)
}
