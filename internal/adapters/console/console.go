// Package console is the terminal input and output channel of the chat.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_chat/internal/app"
	"hotel_chat/internal/domain"
)

const (
	Title   = "Global Hotel Finder"
	Caption = "Find safe, budget-friendly hotels anywhere!"
	Prompt  = "Enter a city or location to search hotels... "
)

type Input struct{ sc *bufio.Scanner }

func NewInput(r io.Reader) *Input { return &Input{sc: bufio.NewScanner(r)} }

// Next returns the next line, or ok=false at end of input.
func (in *Input) Next() (string, bool) {
	if !in.sc.Scan() {
		return "", false
	}
	return in.sc.Text(), true
}

type Output struct {
	w       io.Writer
	speaker domain.Speaker
	// speechAvailable is checked explicitly; a nil speaker also disables speech.
	speechAvailable bool
}

func NewOutput(w io.Writer, speaker domain.Speaker, speechAvailable bool) *Output {
	return &Output{w: w, speaker: speaker, speechAvailable: speechAvailable && speaker != nil}
}

func (o *Output) Banner() {
	fmt.Fprintf(o.w, "%s\n%s\n\n", Title, Caption)
}

func (o *Output) Prompt() { fmt.Fprint(o.w, Prompt) }

// Render prints one turn and, when speech is available, speaks its summary.
func (o *Output) Render(ctx context.Context, r app.TurnResult) {
	if r.Skipped {
		return
	}
	fmt.Fprintln(o.w, r.Searching)
	switch {
	case r.Notice != "":
		fmt.Fprintln(o.w, r.Notice)
	default:
		fmt.Fprintln(o.w, r.Presentation.Headline)
		for _, b := range r.Presentation.Blocks {
			writeBlock(o.w, b)
		}
	}
	fmt.Fprintln(o.w)

	if o.speechAvailable {
		if err := o.speaker.Speak(ctx, r.Spoken()); err != nil {
			log.Warn().Err(err).Msg("speech failed")
		}
	}
}

func (o *Output) History(conv *domain.Conversation) {
	for _, m := range conv.Messages {
		fmt.Fprintf(o.w, "[%s] %s\n", m.Role, strings.TrimRight(m.Content, "\n"))
	}
	fmt.Fprintln(o.w)
}

func writeBlock(w io.Writer, b app.Block) {
	fmt.Fprintf(w, "### %d. %s\n", b.Index, b.Name)
	fmt.Fprintf(w, "%s stars | Price Level: %s\n", b.Rating, b.PriceLevel)
	fmt.Fprintf(w, "%s\n", b.Address)
	fmt.Fprintf(w, "[View on Map](%s)\n", b.MapURL)
	fmt.Fprintln(w, "---")
}
