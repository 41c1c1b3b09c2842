package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_chat/internal/adapters/observability"
	"hotel_chat/internal/domain"
)

const DefaultSearchRadius = 5000

type TurnResult struct {
	Skipped      bool
	Query        string
	Branch       Branch
	Searching    string
	Presentation Presentation
	// Notice replaces the presentation for location-not-found and error turns.
	Notice string
}

// Spoken is the one-sentence summary for a speech-capable output channel.
func (r TurnResult) Spoken() string {
	switch r.Branch {
	case BranchLocationNotFound:
		return fmt.Sprintf("Sorry, I couldn't find the location %s.", r.Query)
	case BranchError:
		return "Sorry, something went wrong while searching for hotels."
	}
	return r.Presentation.Spoken
}

// Assistant is the transcript entry appended for this turn.
func (r TurnResult) Assistant() string {
	if r.Notice != "" {
		return r.Notice
	}
	return r.Presentation.Transcript
}

type ChatService struct {
	maps   domain.MapsClient
	radius int
}

func NewChatService(m domain.MapsClient, radiusMeters int) *ChatService {
	if radiusMeters <= 0 {
		radiusMeters = DefaultSearchRadius
	}
	return &ChatService{maps: m, radius: radiusMeters}
}

// HandleTurn runs one user query through geocoding, nearby search,
// classification and formatting. Exactly one user and one assistant message
// are appended to conv, unless the input is blank.
func (s *ChatService) HandleTurn(ctx context.Context, conv *domain.Conversation, input string) TurnResult {
	query := strings.TrimSpace(input)
	if query == "" {
		return TurnResult{Skipped: true}
	}
	start := time.Now()
	conv.Append(domain.RoleUser, query)

	res := s.run(ctx, query)
	conv.Append(domain.RoleAssistant, res.Assistant())

	observability.ObserveTurn(string(res.Branch), time.Since(start))
	log.Info().
		Str("session", conv.ID).
		Str("query", query).
		Str("branch", string(res.Branch)).
		Int("shown", len(res.Presentation.Blocks)).
		Dur("duration", time.Since(start)).
		Msg("turn")
	return res
}

func (s *ChatService) run(ctx context.Context, query string) TurnResult {
	res := TurnResult{
		Query:     query,
		Searching: fmt.Sprintf("Searching for safe, budget hotels near **%s**...", query),
	}

	at, found, err := s.resolve(ctx, query)
	if err != nil {
		return failed(res, err)
	}
	if !found {
		res.Branch = BranchLocationNotFound
		res.Notice = fmt.Sprintf("Couldn't find location: %s", query)
		return res
	}

	raw, err := s.maps.NearbyLodging(ctx, at, s.radius)
	if err != nil {
		return failed(res, fmt.Errorf("nearby search: %w", err))
	}

	branch, shortlist := Select(Classify(mapPlaces(raw)))
	res.Branch = branch
	res.Presentation = Present(query, branch, shortlist)
	return res
}

func (s *ChatService) resolve(ctx context.Context, query string) (domain.Coords, bool, error) {
	results, err := s.maps.Geocode(ctx, query)
	if err != nil {
		return domain.Coords{}, false, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coords{}, false, nil
	}
	at, ok := mapCoords(results[0])
	return at, ok, nil
}

func failed(res TurnResult, err error) TurnResult {
	log.Warn().Err(err).Str("query", res.Query).Msg("turn failed")
	res.Branch = BranchError
	res.Notice = fmt.Sprintf("Error: %v", err)
	return res
}
