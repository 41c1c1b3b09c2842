package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_chat/internal/adapters/console"
	"hotel_chat/internal/app"
	"hotel_chat/internal/domain"
)

type fakeSpeaker struct{ said []string }

func (f *fakeSpeaker) Speak(ctx context.Context, text string) error {
	f.said = append(f.said, text)
	return nil
}

func sampleResult() app.TurnResult {
	name, addr := "Hotel Uno", "Via Roma 1"
	rating, price := 4.5, 1
	p := app.Present("Rome", app.BranchSafe, []domain.Place{{
		Name: &name, Vicinity: &addr, Rating: &rating, PriceLevel: &price,
		Location: domain.Coords{Lat: 41.9, Lng: 12.5},
	}})
	return app.TurnResult{Query: "Rome", Branch: app.BranchSafe, Searching: "Searching...", Presentation: p}
}

func TestInput_Next(t *testing.T) {
	in := console.NewInput(strings.NewReader("Paris\nBerlin\n"))
	line, ok := in.Next()
	require.True(t, ok)
	assert.Equal(t, "Paris", line)
	line, ok = in.Next()
	require.True(t, ok)
	assert.Equal(t, "Berlin", line)
	_, ok = in.Next()
	assert.False(t, ok)
}

func TestOutput_RenderBlocksAndSpeech(t *testing.T) {
	var buf bytes.Buffer
	sp := &fakeSpeaker{}
	out := console.NewOutput(&buf, sp, true)

	out.Render(context.Background(), sampleResult())

	s := buf.String()
	assert.Contains(t, s, "Here are the safest budget hotels I found:")
	assert.Contains(t, s, "### 1. Hotel Uno")
	assert.Contains(t, s, "4.5 stars | Price Level: 1")
	assert.Contains(t, s, "https://www.google.com/maps/search/?api=1&query=41.9,12.5")
	require.Len(t, sp.said, 1)
	assert.Contains(t, sp.said[0], "Rome")
}

func TestOutput_NoSpeechWhenUnavailable(t *testing.T) {
	var buf bytes.Buffer
	sp := &fakeSpeaker{}
	out := console.NewOutput(&buf, sp, false)

	out.Render(context.Background(), sampleResult())
	out.Render(context.Background(), app.TurnResult{Query: "Atlantis", Branch: app.BranchLocationNotFound, Notice: "Couldn't find location: Atlantis"})

	assert.Empty(t, sp.said)
	assert.Contains(t, buf.String(), "Couldn't find location: Atlantis")
}

func TestOutput_SkippedTurnPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	console.NewOutput(&buf, nil, true).Render(context.Background(), app.TurnResult{Skipped: true})
	assert.Empty(t, buf.String())
}
