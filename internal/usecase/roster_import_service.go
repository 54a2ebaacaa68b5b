package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	rosterImportStatusSuccess = "success"
	rosterImportStatusPartial = "partial"
	rosterImportStatusFailed  = "failed"
)

type RosterImport struct {
	TeamName string
	Players  []RegisterPlayerInput
}

type RosterPlayerFailure struct {
	FirstName string
	LastName  string
	Reason    string
}

type RosterImportResult struct {
	TeamName   string
	Status     string
	Registered int
	Failures   []RosterPlayerFailure
	DurationMs int64
}

type RosterImportSummary struct {
	Results    []RosterImportResult
	Registered int
	Failed     int
}

// RosterImportService registers players for many teams at once. Teams are processed
// concurrently; players of one team are registered in the given order.
type RosterImportService struct {
	teams   *TeamService
	workers int
}

func NewRosterImportService(teams *TeamService, workers int) *RosterImportService {
	if workers < 1 {
		workers = 1
	}
	return &RosterImportService{teams: teams, workers: workers}
}

func (s *RosterImportService) Import(ctx context.Context, imports []RosterImport) (RosterImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterImportService.Import")
	defer span.End()

	if len(imports) == 0 {
		return RosterImportSummary{}, fmt.Errorf("%w: at least one roster is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(imports))
	for _, item := range imports {
		name := strings.TrimSpace(item.TeamName)
		if name == "" {
			return RosterImportSummary{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
		}
		if _, ok := seen[name]; ok {
			return RosterImportSummary{}, fmt.Errorf("%w: team %s listed more than once", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
	}

	workerCount := min(s.workers, len(imports))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RosterImportSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]RosterImportResult, len(imports))
	var workers sync.WaitGroup
	for idx, item := range imports {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[idx] = s.importRoster(ctx, item)
		}); err != nil {
			workers.Done()
			results[idx] = RosterImportResult{
				TeamName: strings.TrimSpace(item.TeamName),
				Status:   rosterImportStatusFailed,
				Failures: []RosterPlayerFailure{{Reason: fmt.Sprintf("submit import task: %v", err)}},
			}
		}
	}
	workers.Wait()

	summary := RosterImportSummary{Results: results}
	for _, row := range results {
		summary.Registered += row.Registered
		summary.Failed += len(row.Failures)
	}

	return summary, nil
}

func (s *RosterImportService) importRoster(ctx context.Context, item RosterImport) RosterImportResult {
	start := time.Now()
	row := RosterImportResult{TeamName: strings.TrimSpace(item.TeamName)}

	for _, in := range item.Players {
		if err := ctx.Err(); err != nil {
			row.Failures = append(row.Failures, RosterPlayerFailure{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Reason:    err.Error(),
			})
			continue
		}

		_, err := s.teams.RegisterPlayer(ctx, row.TeamName, in)
		if err == nil {
			row.Registered++
			continue
		}
		row.Failures = append(row.Failures, RosterPlayerFailure{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Reason:    err.Error(),
		})
		if errors.Is(err, ErrNotFound) {
			// the team is missing, every remaining player would fail the same way
			for _, rest := range item.Players[len(row.Failures)+row.Registered:] {
				row.Failures = append(row.Failures, RosterPlayerFailure{
					FirstName: rest.FirstName,
					LastName:  rest.LastName,
					Reason:    err.Error(),
				})
			}
			break
		}
	}

	switch {
	case len(row.Failures) == 0:
		row.Status = rosterImportStatusSuccess
	case row.Registered == 0:
		row.Status = rosterImportStatusFailed
	default:
		row.Status = rosterImportStatusPartial
	}
	row.DurationMs = time.Since(start).Milliseconds()

	return row
}
