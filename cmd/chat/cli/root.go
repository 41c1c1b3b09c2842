package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_chat/internal/adapters/console"
	"hotel_chat/internal/adapters/googlemaps"
	"hotel_chat/internal/adapters/observability"
	"hotel_chat/internal/adapters/speech"
	"hotel_chat/internal/app"
	"hotel_chat/internal/domain"
	"hotel_chat/internal/shared"
)

var (
	envFile   string
	speechOn  bool
	speechCmd string
)

var rootCmd = &cobra.Command{
	Use:           "hotel-chat",
	Short:         "Chat with a hotel finder that suggests safe, budget-friendly lodging",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := shared.Load(envFile)
		log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)

		if !cmd.Flags().Changed("speech") {
			speechOn = cfg.SpeechEnabled
		}
		if !cmd.Flags().Changed("speech-cmd") {
			speechCmd = cfg.SpeechCmd
		}

		maps, err := googlemaps.New(cfg.MapsBase, cfg.MapsKey, cfg.MapsRPS)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Please set GOOGLE_MAPS_API_KEY in your .env file.")
			return err
		}

		var speaker domain.Speaker
		if speechOn {
			c, err := speech.Lookup(speechCmd)
			if err != nil {
				log.Warn().Err(err).Msg("speech disabled")
			} else {
				speaker = c
			}
		}

		observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

		s := &session{
			chat: app.NewChatService(maps, cfg.SearchRadius),
			in:   console.NewInput(cmd.InOrStdin()),
			out:  console.NewOutput(cmd.OutOrStdout(), speaker, speaker != nil),
			conv: &domain.Conversation{ID: uuid.NewString()},
		}
		return s.loop(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a dotenv file with GOOGLE_MAPS_API_KEY")
	rootCmd.Flags().BoolVar(&speechOn, "speech", false, "Speak a short summary of each answer")
	rootCmd.Flags().StringVar(&speechCmd, "speech-cmd", "espeak", "Text-to-speech command")
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

type session struct {
	chat *app.ChatService
	in   *console.Input
	out  *console.Output
	conv *domain.Conversation
}

func (s *session) loop(ctx context.Context, w io.Writer) error {
	s.out.Banner()
	for {
		s.out.Prompt()
		line, ok := s.in.Next()
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		switch strings.TrimSpace(line) {
		case "/quit", "/exit":
			return nil
		case "/history":
			s.out.History(s.conv)
			continue
		}
		s.out.Render(ctx, s.chat.HandleTurn(ctx, s.conv, line))
	}
}
