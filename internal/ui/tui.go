package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI components
var (
	App         *tview.Application
	MainFlex    *tview.Flex
	ProgressBar *tview.TextView
	LogView     *tview.TextView
	StatusBar   *tview.TextView
	ReportView  *tview.TextView
)

type tuiSink struct{}

func (tuiSink) WriteLine(level Level, timestamp, msg string) {
	fmt.Fprintf(LogView, "[blue]%s[white] [%s]%s[white]: %s\n", timestamp, level.tviewColor(), level, tview.Escape(msg))
}

// SetupTUI initializes the terminal UI components
func SetupTUI(title string) {
	App = tview.NewApplication()
	MainFlex = tview.NewFlex().SetDirection(tview.FlexRow)

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(title).
		SetTextColor(tcell.ColorYellow)

	ProgressBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	// Configure log view with auto-scrolling
	LogView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true).
		SetChangedFunc(func() {
			queueDraw(func() {
				LogView.ScrollToEnd()
			})
		})
	LogView.SetBorder(true)
	LogView.SetTitle("Log")
	LogView.SetTitleColor(tcell.ColorGreen)

	ReportView = tview.NewTextView().
		SetScrollable(true).
		SetWordWrap(true)
	ReportView.SetBorder(true)
	ReportView.SetTitle("Last Report")
	ReportView.SetTitleColor(tcell.ColorPurple)

	StatusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Press Ctrl+C to exit[white]")

	MainFlex.AddItem(header, 1, 1, false).
		AddItem(ProgressBar, 1, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(LogView, 0, 3, false).
			AddItem(ReportView, 0, 2, false),
			0, 10, false).
		AddItem(StatusBar, 1, 1, false)

	App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC, event.Key() == tcell.KeyRune && event.Rune() == 'q':
			App.Stop()
			return nil
		case event.Key() == tcell.KeyPgUp:
			_, _, _, height := LogView.GetInnerRect()
			row, _ := LogView.GetScrollOffset()
			LogView.ScrollTo(row-height+1, 0)
			return nil
		case event.Key() == tcell.KeyPgDn:
			_, _, _, height := LogView.GetInnerRect()
			row, _ := LogView.GetScrollOffset()
			LogView.ScrollTo(row+height-1, 0)
			return nil
		case event.Key() == tcell.KeyEnd:
			LogView.ScrollToEnd()
			return nil
		case event.Key() == tcell.KeyHome:
			LogView.ScrollTo(0, 0)
			return nil
		}
		return event
	})
}

// RunTUI runs work while the dashboard is displayed. The dashboard stays open
// after work finishes until the user quits; quitting early cancels work's context.
func RunTUI(ctx context.Context, title string, work func(ctx context.Context) error) error {
	SetupTUI(title)
	restore := setSink(tuiSink{})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var workErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		workErr = work(ctx)
		if workErr != nil {
			LogError("%v", workErr)
			UpdateStatus("Finished with errors. Press q or Ctrl+C to exit")
			return
		}
		UpdateStatus("Finished. Press q or Ctrl+C to exit")
	}()

	runErr := App.SetRoot(MainFlex, true).Run()
	restore()
	cancel()
	<-done

	if runErr != nil {
		return fmt.Errorf("running terminal UI: %w", runErr)
	}
	return workErr
}

// queueDraw schedules f on the event loop without blocking the caller.
// QueueUpdateDraw never returns once the application has stopped.
func queueDraw(f func()) {
	app := App
	go app.QueueUpdateDraw(f)
}

// RenderProgressBar renders a progress line in tview colour tags
func RenderProgressBar(processed, total int, unit string) string {
	if total == 0 {
		return fmt.Sprintf("[yellow]No %s to process[white]", unit)
	}
	percentage := float64(processed) / float64(total) * 100
	barWidth := 50
	completedWidth := barWidth * processed / total
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		if i < completedWidth {
			bar.WriteString("[green]█[white]")
		} else {
			bar.WriteString("[gray]░[white]")
		}
	}
	return fmt.Sprintf("%s [green]%d/%d %s processed (%.1f%%)[white]", bar.String(), processed, total, unit, percentage)
}

// UpdateProgress updates the progress bar when the TUI is active
func UpdateProgress(processed, total int, unit string) {
	if !tuiActive() {
		return
	}
	text := RenderProgressBar(processed, total, unit)
	queueDraw(func() {
		ProgressBar.SetText(text)
	})
}

// UpdateReportPreview shows the most recently generated report
func UpdateReportPreview(label, report string) {
	if !tuiActive() {
		return
	}
	queueDraw(func() {
		ReportView.SetTitle("Last Report: " + label)
		ReportView.SetText(report)
		ReportView.ScrollToBeginning()
	})
}

// UpdateStatus updates the status bar text
func UpdateStatus(text string) {
	if !tuiActive() {
		return
	}
	queueDraw(func() {
		StatusBar.SetText(fmt.Sprintf("[yellow]%s[white]", tview.Escape(text)))
	})
}
