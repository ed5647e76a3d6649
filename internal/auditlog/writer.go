package auditlog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Record saves a best-effort audit entry for a command that began at start.
// Metadata attached to ctx fills any empty resource fields. Failures to
// open or write the log are logged, never returned.
func Record(ctx context.Context, log zerolog.Logger, entry *AuditEntry, start time.Time, err error) {
	MetadataFromContext(ctx).Fill(entry)
	entry.Finish(start, err)

	repo, openErr := Open()
	if openErr != nil {
		log.Debug().Err(openErr).Msg("audit log unavailable")
		return
	}
	defer repo.Close()

	if saveErr := repo.Save(entry); saveErr != nil {
		log.Warn().Err(saveErr).Str("command", entry.Command).Msg("failed to write audit entry")
	}
}
