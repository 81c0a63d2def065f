package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

// systemUserID is the sender of moderation notices.
const systemUserID = 0

// NewDecisionNotifier returns the handler for notify.decision jobs: it
// delivers a system message to the listing owner telling them the outcome of
// the admin review.
func NewDecisionNotifier(messages repository.MessageRepo, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, j *Job) error {
		var p DecisionPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode decision payload: %w", err)
		}

		var body string
		switch p.Decision {
		case models.StatusActive, models.StatusApproved:
			body = fmt.Sprintf("Your listing %q was approved and is now live.", p.Title)
		case models.StatusRejected:
			body = fmt.Sprintf("Your listing %q was rejected. Contact support for details.", p.Title)
		default:
			// unknown decision is a permanent failure, retrying won't help
			logger.Error("unknown moderation decision", "decision", p.Decision, "job", j.ID)
			return nil
		}

		msg := &models.Message{
			SenderID:    systemUserID,
			RecipientID: p.OwnerID,
			PropertyID:  &p.PropertyID,
			Body:        body,
			System:      true,
		}
		if _, err := messages.CreateMessage(ctx, msg); err != nil {
			return fmt.Errorf("deliver decision notice: %w", err)
		}

		logger.Info("moderation notice delivered", "property", p.PropertyID, "owner", p.OwnerID, "decision", p.Decision)
		return nil
	}
}

// NewReportTriage returns the handler for report.triage jobs: listings that
// accumulate threshold open reports are unpublished until an admin reviews
// them. Unpublishing alone removes the listing from every public surface.
func NewReportTriage(properties repository.PropertyRepo, reports repository.ReportRepo, threshold int64, logger *slog.Logger) Handler {
	if threshold <= 0 {
		threshold = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, j *Job) error {
		var p TriagePayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode triage payload: %w", err)
		}

		open, err := reports.CountOpenByProperty(ctx, p.PropertyID)
		if err != nil {
			return fmt.Errorf("count open reports: %w", err)
		}
		if open < threshold {
			return nil
		}

		if err := properties.SetPublished(ctx, p.PropertyID, false); err != nil {
			return fmt.Errorf("unpublish reported listing: %w", err)
		}

		logger.Info("listing unpublished after report threshold", "property", p.PropertyID, "open_reports", open)
		return nil
	}
}
