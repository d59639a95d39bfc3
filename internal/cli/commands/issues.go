package commands

import (
	"github.com/spf13/cobra"
	"rtp/internal/config"
	"rtp/internal/storage"
	"rtp/internal/ui"
)

// IssuesCommand handles the issues command
type IssuesCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  *ui.IssueViewer
}

// NewIssuesCommand creates a new IssuesCommand
func NewIssuesCommand(cfg *config.Config, st storage.Storage, viewer *ui.IssueViewer) *IssuesCommand {
	return &IssuesCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (ic *IssuesCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := ic.storage.Load()
	if err != nil {
		return err
	}
	return ic.viewer.View(report)
}
