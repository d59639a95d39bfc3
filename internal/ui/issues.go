package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"rtp/internal/config"
	"rtp/internal/domain"
	"rtp/internal/storage"
)

// IssueViewer displays analysis diagnostics in an interactive TUI
type IssueViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewIssueViewer creates a new IssueViewer
func NewIssueViewer(cfg *config.Config, st storage.Storage) *IssueViewer {
	return &IssueViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the report's diagnostics in an interactive TUI
func (iv *IssueViewer) View(report *domain.Report) error {
	if len(report.Diagnostics) == 0 {
		color.Green("✓ No findings in the last analysis!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, d := range report.Diagnostics {
		if d.Resolved {
			resolved[i] = true
		}
	}

	saveResolved := func() error {
		for i := range report.Diagnostics {
			report.Diagnostics[i].Resolved = resolved[i]
		}
		return iv.storage.SaveReport(report)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		d := report.Diagnostics[index]
		tag := severityTag(d.Severity)
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ %d. %s %s[white]", index+1, tag, d.Message)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s %s", index+1, tag, d.Message)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range report.Diagnostics {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for i := range report.Diagnostics {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Findings (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] resolve, → details, ← back, Ctrl+C exit ",
			len(report.Diagnostics), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Diagnostics) {
			d := report.Diagnostics[index]
			statsView.SetText(iv.formatStats(d, index+1))
			detailsView.SetText(iv.formatDetails(d))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Diagnostics) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					if err := saveResolved(); err != nil {
						statsView.SetText(fmt.Sprintf("[red]failed to save: %v", err))
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEscape:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	return app.SetRoot(layout, true).Run()
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return "[red][E][white]"
	case domain.SeverityWarning:
		return "[yellow][W][white]"
	default:
		return "[blue][I][white]"
	}
}

// formatStats renders the short header for one finding.
func (iv *IssueViewer) formatStats(d domain.Diagnostic, number int) string {
	location := d.SuitePath
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", d.SuitePath, d.Line)
	}
	return fmt.Sprintf(" [yellow]#%d[white] %s %s\n %s",
		number, severityTag(d.Severity), d.Code, location)
}

// formatDetails renders the full details pane for one finding.
func (iv *IssueViewer) formatDetails(d domain.Diagnostic) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Severity:\t%s\n", d.Severity)
	fmt.Fprintf(w, "Code:\t%s\n", d.Code)
	fmt.Fprintf(w, "File:\t%s\n", d.SuitePath)
	if d.Line > 0 {
		fmt.Fprintf(w, "Line:\t%d\n", d.Line)
	}
	if d.Context != "" {
		fmt.Fprintf(w, "In:\t%s\n", d.Context)
	}
	w.Flush()
	b.WriteString("\n")
	b.WriteString(d.Message)
	return b.String()
}
