package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/session"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/services/markdown"
)

// seededRepos holds three PM tickets in March 2024: two on the 1st (one of
// them closed) and one on the 15th.
func seededRepos(t *testing.T) TicketRepositories {
	t.Helper()
	store := session.NewStore()
	repos := TicketRepositories{
		Breakdowns:   store.Breakdowns(),
		Preventives:  store.Preventives(),
		Calibrations: store.Calibrations(),
	}
	ctx := context.Background()

	first := newPM(t, "pm_1", day(2024, 3, 1))
	require.NoError(t, repos.Preventives.CreateBatch(ctx, []*ticket.Preventive{
		first,
		newPM(t, "pm_2", day(2024, 3, 1)),
		newPM(t, "pm_3", day(2024, 3, 15)),
	}))
	closed, successor, err := first.CloseAndReschedule(day(2024, 3, 1), "pm_4")
	require.NoError(t, err)
	require.NoError(t, repos.Preventives.CloseAndAppend(ctx, closed, successor))
	return repos
}

func TestGetCalendarMonthUseCase_Execute(t *testing.T) {
	uc := NewGetCalendarMonthUseCase(seededRepos(t), &mockLogger{})

	month, err := uc.Execute(context.Background(), GetCalendarMonthQuery{Year: 2024, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, "preventive", month.Kind)
	require.Len(t, month.Days, 31)
	assert.Equal(t, "2024-03-01", month.Days[0].Date)
	assert.Equal(t, 1, month.Days[0].Pending)
	assert.Equal(t, 1, month.Days[0].Completed)
	assert.Equal(t, 1, month.Days[14].Pending)
	assert.Zero(t, month.Days[1].Pending+month.Days[1].Completed)

	april, err := uc.Execute(context.Background(), GetCalendarMonthQuery{Year: 2024, Month: 4})
	require.NoError(t, err)
	require.Len(t, april.Days, 30)
	assert.Equal(t, 1, april.Days[0].Pending, "successor lands on April 1st")

	_, err = uc.Execute(context.Background(), GetCalendarMonthQuery{Year: 2024, Month: 13})
	assert.True(t, errors.IsValidationError(err))
	_, err = uc.Execute(context.Background(), GetCalendarMonthQuery{Year: 2024, Month: 3, Kind: "breakdown"})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetDaySummaryUseCase_Execute(t *testing.T) {
	uc := NewGetDaySummaryUseCase(seededRepos(t), markdown.NewRenderer(), &mockLogger{})

	summary, err := uc.Execute(context.Background(), GetDaySummaryQuery{Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, summary.Pending, 1)
	assert.Len(t, summary.Completed, 1)
	assert.Empty(t, summary.HTML)

	rendered, err := uc.Execute(context.Background(), GetDaySummaryQuery{Date: "2024-03-01", Format: "html"})
	require.NoError(t, err)
	assert.Contains(t, rendered.HTML, "PM Summary: 2024-03-01")
	assert.Contains(t, rendered.HTML, "<table>")
	assert.Contains(t, rendered.HTML, "Preventive Maintenance: M-010")

	empty, err := uc.Execute(context.Background(), GetDaySummaryQuery{Date: "2024-03-02", Format: "html"})
	require.NoError(t, err)
	assert.Contains(t, empty.HTML, "No tickets scheduled")

	_, err = uc.Execute(context.Background(), GetDaySummaryQuery{Date: "03/01/2024"})
	assert.True(t, errors.IsValidationError(err))
	_, err = uc.Execute(context.Background(), GetDaySummaryQuery{Date: "2024-03-01", Format: "pdf"})
	assert.True(t, errors.IsValidationError(err))
}

func TestScanOverdueTicketsUseCase_Execute(t *testing.T) {
	repos := seededRepos(t)
	publisher := &mockPublisher{}
	metrics := newMockMetrics()

	uc := NewScanOverdueTicketsUseCase(repos, publisher, metrics, &mockLogger{})
	uc.now = func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) }

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// pm_2 (Mar 1) and pm_3 (Mar 15) are open and past due; pm_4 is due Apr 1.
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, metrics.count("overdue:preventive"))
	assert.Equal(t, []string{ticket.EventTicketOverdue, ticket.EventTicketOverdue}, publisher.types())
}

func TestRefreshOpenTicketGaugesUseCase_Execute(t *testing.T) {
	metrics := newMockMetrics()
	uc := NewRefreshOpenTicketGaugesUseCase(seededRepos(t), metrics, &mockLogger{})

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, metrics.count("open:preventive"))
	assert.Equal(t, 0, metrics.count("open:breakdown"))
}

func TestListAndGetTicketUseCases(t *testing.T) {
	repos := seededRepos(t)
	list := NewListTicketsUseCase(repos, &mockLogger{})

	all, err := list.Execute(context.Background(), ListTicketsQuery{Kind: "preventive"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)

	open, err := list.Execute(context.Background(), ListTicketsQuery{Kind: "pm", Status: "Open", PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), open.Total)
	assert.Len(t, open.Items, 2)

	empty, err := list.Execute(context.Background(), ListTicketsQuery{Kind: "breakdown"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Total)

	_, err = list.Execute(context.Background(), ListTicketsQuery{Kind: "repair"})
	assert.True(t, errors.IsValidationError(err))
	_, err = list.Execute(context.Background(), ListTicketsQuery{Kind: "preventive", Status: "Pending"})
	assert.True(t, errors.IsValidationError(err))

	get := NewGetTicketUseCase(repos, &mockLogger{})
	got, err := get.Execute(context.Background(), GetTicketQuery{Kind: "preventive", ID: "pm_4"})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", got.ScheduledDate.Format("2006-01-02"))

	_, err = get.Execute(context.Background(), GetTicketQuery{Kind: "calibration", ID: "pm_4"})
	assert.True(t, errors.IsNotFoundError(err))
}
