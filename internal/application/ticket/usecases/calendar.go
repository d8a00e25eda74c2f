package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/services/markdown"
)

const (
	SummaryFormatJSON = "json"
	SummaryFormatHTML = "html"
)

// scheduledBetween returns every recurring ticket of kind scheduled in
// [from, to], oldest first.
func (r TicketRepositories) scheduledBetween(ctx context.Context, kind vo.Kind, from, to time.Time) ([]*dto.TicketDTO, error) {
	filter := ticket.Filter{ScheduledFrom: &from, ScheduledTo: &to}
	switch kind {
	case vo.KindPreventive:
		ps, _, err := r.Preventives.List(ctx, filter)
		return dto.FromPreventives(ps), err
	case vo.KindCalibration:
		cs, _, err := r.Calibrations.List(ctx, filter)
		return dto.FromCalibrations(cs), err
	default:
		return nil, fmt.Errorf("%s tickets are not scheduled", kind)
	}
}

func parseRecurringKind(s string) (vo.Kind, error) {
	if s == "" {
		return vo.KindPreventive, nil
	}
	kind, err := vo.ParseKind(s)
	if err != nil || !kind.IsRecurring() {
		return "", errors.NewValidationError("calendar kind must be preventive or calibration", s)
	}
	return kind, nil
}

type GetCalendarMonthQuery struct {
	Year  int
	Month int
	Kind  string
}

// GetCalendarMonthUseCase counts pending and completed recurring tickets
// for each day of a month.
type GetCalendarMonthUseCase struct {
	repos  TicketRepositories
	logger logger.Interface
}

func NewGetCalendarMonthUseCase(repos TicketRepositories, logger logger.Interface) *GetCalendarMonthUseCase {
	return &GetCalendarMonthUseCase{repos: repos, logger: logger}
}

func (uc *GetCalendarMonthUseCase) Execute(ctx context.Context, query GetCalendarMonthQuery) (*dto.CalendarMonthDTO, error) {
	if query.Month < 1 || query.Month > 12 {
		return nil, errors.NewValidationError("month must be between 1 and 12")
	}
	if query.Year < 1 {
		return nil, errors.NewValidationError("invalid year")
	}
	kind, err := parseRecurringKind(query.Kind)
	if err != nil {
		return nil, err
	}

	month := time.Month(query.Month)
	from := biztime.StartOfMonthUTC(query.Year, month)
	to := biztime.EndOfMonthUTC(query.Year, month)

	tickets, err := uc.repos.scheduledBetween(ctx, kind, from, to)
	if err != nil {
		uc.logger.Errorw("failed to load calendar tickets", "kind", kind, "error", err)
		return nil, errors.NewInternalError("failed to load calendar")
	}

	counts := make(map[string]*dto.CalendarDayDTO)
	for _, t := range tickets {
		date := biztime.FormatDate(*t.ScheduledDate)
		day, ok := counts[date]
		if !ok {
			day = &dto.CalendarDayDTO{Date: date}
			counts[date] = day
		}
		if t.Status == vo.StatusClosed.String() {
			day.Completed++
		} else {
			day.Pending++
		}
	}

	days := make([]dto.CalendarDayDTO, 0, 31)
	for d := biztime.ToBizTimezone(from); d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := biztime.FormatDate(d)
		if day, ok := counts[date]; ok {
			days = append(days, *day)
		} else {
			days = append(days, dto.CalendarDayDTO{Date: date})
		}
	}

	return &dto.CalendarMonthDTO{
		Year:  query.Year,
		Month: query.Month,
		Kind:  kind.String(),
		Days:  days,
	}, nil
}

type GetDaySummaryQuery struct {
	Date   string
	Kind   string
	Format string
}

// GetDaySummaryUseCase lists the recurring tickets scheduled on one day,
// optionally rendered as HTML.
type GetDaySummaryUseCase struct {
	repos    TicketRepositories
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewGetDaySummaryUseCase(repos TicketRepositories, renderer markdown.Renderer, logger logger.Interface) *GetDaySummaryUseCase {
	return &GetDaySummaryUseCase{repos: repos, renderer: renderer, logger: logger}
}

func (uc *GetDaySummaryUseCase) Execute(ctx context.Context, query GetDaySummaryQuery) (*dto.DaySummaryDTO, error) {
	day, err := biztime.ParseDate(query.Date)
	if err != nil {
		return nil, errors.NewValidationError("date must be YYYY-MM-DD", query.Date)
	}
	kind, err := parseRecurringKind(query.Kind)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(query.Format)
	if format == "" {
		format = SummaryFormatJSON
	}
	if format != SummaryFormatJSON && format != SummaryFormatHTML {
		return nil, errors.NewValidationError("format must be json or html", query.Format)
	}

	tickets, err := uc.repos.scheduledBetween(ctx, kind, biztime.StartOfDayUTC(day), biztime.EndOfDayUTC(day))
	if err != nil {
		uc.logger.Errorw("failed to load day summary", "kind", kind, "date", query.Date, "error", err)
		return nil, errors.NewInternalError("failed to load day summary")
	}

	summary := &dto.DaySummaryDTO{
		Date:      biztime.FormatDate(day),
		Kind:      kind.String(),
		Pending:   []*dto.TicketDTO{},
		Completed: []*dto.TicketDTO{},
	}
	for _, t := range tickets {
		if t.Status == vo.StatusClosed.String() {
			summary.Completed = append(summary.Completed, t)
		} else {
			summary.Pending = append(summary.Pending, t)
		}
	}

	if format == SummaryFormatHTML {
		html, err := uc.renderer.ToHTML(summaryMarkdown(summary))
		if err != nil {
			uc.logger.Errorw("failed to render day summary", "error", err)
			return nil, errors.NewInternalError("failed to render day summary")
		}
		summary.HTML = html
	}
	return summary, nil
}

func summaryMarkdown(s *dto.DaySummaryDTO) string {
	heading := "PM Summary"
	if s.Kind == vo.KindCalibration.String() {
		heading = "Calibration Summary"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", heading, s.Date)
	fmt.Fprintf(&b, "| Completed | Pending |\n|---|---|\n| %d | %d |\n\n", len(s.Completed), len(s.Pending))

	section := func(title string, tickets []*dto.TicketDTO) {
		if len(tickets) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n| Ticket | Area | Frequency |\n|---|---|---|\n", title)
		for _, t := range tickets {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t.Title, t.Area, t.FrequencyLabel)
		}
		b.WriteString("\n")
	}
	section("Pending", s.Pending)
	section("Completed", s.Completed)

	if len(s.Pending)+len(s.Completed) == 0 {
		b.WriteString("No tickets scheduled for this day.\n")
	}
	return b.String()
}
