package mock

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/port"
)

// Mailer implements the mailer interface for tests.
type Mailer struct {
	NotifyErr error

	NotifyCalled bool
	NotifyCount  int
	Summaries    []port.DownloadSummary
}

var _ port.Mailer = (*Mailer)(nil)

func (m *Mailer) NotifyManager(ctx context.Context, summaries []port.DownloadSummary) error {
	m.NotifyCalled = true
	m.NotifyCount++
	m.Summaries = summaries
	return m.NotifyErr
}
