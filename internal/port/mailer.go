package port

import "context"

// DownloadSummary is one line of a manager notification: a requested video
// and where its link should go.
type DownloadSummary struct {
	RequestID  string
	VideoTitle string
	Email      string
	AccessURL  string
}

// Mailer sends a notification to the reviewing manager summarising one or
// more download requests. Implementations must sanitise every interpolated
// field and refuse header fields containing CR/LF.
type Mailer interface {
	NotifyManager(ctx context.Context, summaries []DownloadSummary) error
}
