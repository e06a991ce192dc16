package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	units "github.com/docker/go-units"
	"golang.org/x/term"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/workflow"
)

const (
	defaultWidth = 80
	maxBarWidth  = 60
	expiryLayout = "January 2, 2006 at 3:04 PM"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	linkStyle    = lipgloss.NewStyle().Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// terminalWidth returns the width of w if it is a terminal.
func terminalWidth(w io.Writer) int {
	if lw, ok := w.(*lockedWriter); ok {
		w = lw.w
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// progressBar renders a bar for percent sized to the output.
func progressBar(percent, width int) string {
	barWidth := width - 10
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth))
	return bar.ViewAs(float64(percent) / 100)
}

func formatExpiry(expiresAt, now time.Time) string {
	local := expiresAt.Local().Format(expiryLayout)
	left := expiresAt.Sub(now)
	if left <= 0 {
		return local
	}
	return fmt.Sprintf("%s (in %s)", local, strings.ToLower(units.HumanDuration(left)))
}

func describeFile(f *models.FileInput) string {
	return fmt.Sprintf("%s (%s)", f.Name, units.HumanSize(float64(f.Size)))
}

func describeText(text string) string {
	n := models.TextLength(text)
	return fmt.Sprintf("%d of %d characters", n, models.MaxTextLength)
}

// renderUpload describes the submission screen.
func renderUpload(s workflow.UploadSnapshot, now time.Time, width int) string {
	var b strings.Builder

	switch s.State {
	case workflow.UploadIdle, workflow.UploadFailed:
		fmt.Fprintf(&b, "Mode: %s\n", s.Mode)
		switch {
		case s.Mode == models.ModeFile && s.File != nil:
			fmt.Fprintf(&b, "File: %s\n", describeFile(s.File))
		case s.Mode == models.ModeText && s.Text != "":
			fmt.Fprintf(&b, "Text: %s\n", describeText(s.Text))
		default:
			b.WriteString(mutedStyle.Render("Nothing staged.") + "\n")
		}
		if s.Err != nil {
			b.WriteString(errorStyle.Render(s.Err.Message) + "\n")
		}

	case workflow.UploadSubmitting:
		b.WriteString(progressBar(s.Progress, width) + "\n")

	case workflow.UploadSucceeded:
		var body strings.Builder
		body.WriteString(successStyle.Render("Upload successful!") + "\n")
		body.WriteString(linkStyle.Render(s.Result.ViewURL) + "\n")
		body.WriteString("Expires: " + formatExpiry(s.Result.ExpiresAt, now))
		if s.LinkCopied {
			body.WriteString("\n" + successStyle.Render("Copied!"))
		}
		b.WriteString(boxStyle.Render(body.String()) + "\n")
	}

	return b.String()
}

// renderLink describes the view screen.
func renderLink(s workflow.LinkSnapshot) string {
	var b strings.Builder

	switch s.State {
	case workflow.LinkIdle:
		b.WriteString(mutedStyle.Render("No link opened.") + "\n")

	case workflow.LinkLoading:
		b.WriteString("Loading...\n")

	case workflow.LinkExpired, workflow.LinkNotFound:
		b.WriteString(errorStyle.Render(s.Message) + "\n")

	case workflow.LinkReady:
		md := s.Metadata
		if text, ok := md.Text(); ok {
			b.WriteString(boxStyle.Render(text) + "\n")
			if s.TextCopied {
				b.WriteString(successStyle.Render("Copied!") + "\n")
			} else {
				b.WriteString(mutedStyle.Render("Type 'copy' to copy the text.") + "\n")
			}
		} else {
			name := md.OriginalFilename
			if name == "" {
				name = md.ShortID
			}
			fmt.Fprintf(&b, "File: %s\n", name)
			b.WriteString(mutedStyle.Render("Type 'download' to save it.") + "\n")
		}
		left := strings.ToLower(units.HumanDuration(s.ExpiresIn))
		fmt.Fprintf(&b, "Expires: %s (in %s)\n", md.ExpiresAt.Local().Format(expiryLayout), left)
	}

	return b.String()
}
