package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
	"github.com/ywjeong/haulbook/internal/sms"
)

// SMSService turns dispatch text messages into trip records. Parsing is a
// read-only pass producing candidates; Commit is the confirmation step that
// enforces the mandatory-address rule and writes through the ledger.
type SMSService struct {
	locations repo.LocationRepo
	ledger    *LedgerService

	// now stamps committed trips; swappable for tests.
	now func() time.Time
}

// NewSMSService constructs an SMSService.
func NewSMSService(locations repo.LocationRepo, ledger *LedgerService) *SMSService {
	return &SMSService{locations: locations, ledger: ledger, now: time.Now}
}

// Parse extracts per-line origin/destination candidates from raw dispatch
// text, using the current location vocabulary longest-name-first. Candidates
// are pre-filled with any address/memo the vocabulary already knows.
// Lines that resolve to nothing are skipped; always returns a non-nil slice.
func (s *SMSService) Parse(ctx context.Context, text string) ([]domain.Candidate, error) {
	locs, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SMSService.Parse: %w", err)
	}

	known := make(map[string]domain.Location, len(locs))
	for _, l := range locs {
		known[l.Name] = l
	}
	names := domain.MatchingView(locs)

	candidates := []domain.Candidate{}
	for i, line := range sms.SplitLines(text) {
		pair, ok := sms.ExtractPair(line, names)
		if !ok {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Line:        i,
			Text:        line,
			Origin:      endpoint(pair.From, pair.FromKnown, known),
			Destination: endpoint(pair.To, pair.ToKnown, known),
		})
	}
	return candidates, nil
}

// Commit confirms a candidate into the ledger. Both endpoints must carry a
// name and a non-empty address — a missing address fails with
// domain.ErrValidation and the ledger is untouched; the requirement is never
// silently skipped. On success the endpoints are registered into the
// vocabulary first (supplied address/memo win over stored ones), then a
// trip record is created stamped now, with the route's recalled fare and
// distance (zero if the route is new) and cost zero.
func (s *SMSService) Commit(ctx context.Context, cand domain.Candidate) (domain.Record, error) {
	from := trimEndpoint(cand.Origin)
	to := trimEndpoint(cand.Destination)

	if from.Name == "" || to.Name == "" {
		return domain.Record{}, fmt.Errorf("%w: origin and destination names are required", domain.ErrValidation)
	}
	if from.Address == "" {
		return domain.Record{}, fmt.Errorf("%w: origin %q has no address", domain.ErrValidation, from.Name)
	}
	if to.Address == "" {
		return domain.Record{}, fmt.Errorf("%w: destination %q has no address", domain.ErrValidation, to.Name)
	}

	for _, ep := range []domain.Endpoint{from, to} {
		loc := domain.Location{Name: ep.Name, Address: ep.Address, Memo: ep.Memo}
		if err := s.locations.Upsert(ctx, loc, true); err != nil {
			return domain.Record{}, fmt.Errorf("service.SMSService.Commit: %w", err)
		}
	}

	recall, err := s.ledger.Recall(ctx, domain.RouteKey{From: from.Name, To: to.Name})
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.SMSService.Commit: %w", err)
	}

	now := s.now()
	rec := domain.Record{
		Date:     openapi_types.Date{Time: now},
		Time:     now.Format("15:04"),
		Type:     domain.TypeTrip,
		From:     from.Name,
		To:       to.Name,
		Distance: recall.Distance,
		Income:   recall.Fare,
	}

	created, err := s.ledger.Add(ctx, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.SMSService.Commit: %w", err)
	}
	return created, nil
}

// endpoint builds a candidate endpoint, pulling stored details for known
// names. A stored address that is blank after trimming is not prefilled, so
// the commit-time address requirement still fires for it.
func endpoint(name string, matched bool, known map[string]domain.Location) domain.Endpoint {
	ep := domain.Endpoint{Name: name, Known: matched}
	if loc, ok := known[name]; ok {
		if loc.HasAddress() {
			ep.Address = loc.Address
		}
		ep.Memo = loc.Memo
		ep.Known = true
	}
	return ep
}

// trimEndpoint trims all free-text fields of an endpoint.
func trimEndpoint(ep domain.Endpoint) domain.Endpoint {
	ep.Name = strings.TrimSpace(ep.Name)
	ep.Address = strings.TrimSpace(ep.Address)
	ep.Memo = strings.TrimSpace(ep.Memo)
	return ep
}
