package email

import (
	"fmt"
	"strings"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/services/markdown"
)

// BreakdownNotifier mails the maintenance team when a breakdown is reported.
type BreakdownNotifier struct {
	sender     Sender
	renderer   markdown.Renderer
	recipients []string
	logger     logger.Interface
}

func NewBreakdownNotifier(sender Sender, renderer markdown.Renderer, recipients []string, log logger.Interface) *BreakdownNotifier {
	return &BreakdownNotifier{
		sender:     sender,
		renderer:   renderer,
		recipients: recipients,
		logger:     log,
	}
}

// Handle implements events.EventHandler. Other event types are ignored.
func (n *BreakdownNotifier) Handle(event events.DomainEvent) error {
	reported, ok := event.(ticket.BreakdownReportedEvent)
	if !ok || len(n.recipients) == 0 {
		return nil
	}

	body := reportBody(reported)
	html, err := n.renderer.ToHTML(body)
	if err != nil {
		n.logger.Warnw("failed to render breakdown email, sending plain text only", "error", err)
		html = ""
	}

	msg := Message{
		To:        n.recipients,
		Subject:   "New breakdown reported: " + reported.Title,
		PlainBody: body,
		HTMLBody:  html,
	}
	if err := n.sender.Send(msg); err != nil {
		n.logger.Errorw("failed to send breakdown notification", "ticket_id", reported.AggregateID, "error", err)
		return err
	}

	n.logger.Infow("breakdown notification sent", "ticket_id", reported.AggregateID, "recipients", len(n.recipients))
	return nil
}

func reportBody(e ticket.BreakdownReportedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", e.Title)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Ticket | %s |\n", e.AggregateID)
	fmt.Fprintf(&b, "| Location | %s |\n", e.Location)
	fmt.Fprintf(&b, "| Shift | %s |\n", e.Shift)
	fmt.Fprintf(&b, "| Reported by | %s |\n", e.AttendedBy)
	fmt.Fprintf(&b, "| Reported at | %s |\n\n", biztime.ToBizTimezone(e.OccurredAt).Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Problem observed:** %s\n", e.ProblemObserved)
	return b.String()
}
