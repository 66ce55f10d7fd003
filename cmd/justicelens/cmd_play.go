package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/config"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/tui"
)

var playFlags struct {
	mute bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore the cases in the terminal",
	Long: `Opens the interactive case explorer. The AI judgment is narrated through
AUDIO_PLAYER after each reveal; pass --mute to skip narration.
Logs go to JUSTICELENS_DEBUG_LOG when set.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playFlags.mute, "mute", false, "Disable narration playback")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if cfg.DebugLogPath != "" {
		f, err := os.OpenFile(cfg.DebugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg.LogLevel)

	eval, err := newEvaluator(cfg, logger)
	if err != nil {
		return err
	}

	var player tui.Player
	if !playFlags.mute {
		p, err := tui.NewCommandPlayer(cfg.AudioPlayer)
		if err != nil {
			return fmt.Errorf("audio player: %w", err)
		}
		player = p
	}

	p := tea.NewProgram(
		tui.NewModel(cmd.Context(), eval, player, logger),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
