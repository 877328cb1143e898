package app

import (
	"context"
	"fmt"

	"github.com/Faultbox/rollcube/internal/engine/term"
	"github.com/Faultbox/rollcube/internal/logger"
)

func (a *App) runTerminal(ctx context.Context) error {
	screen, err := term.Open()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Fini()

	s := term.New(screen, a.director, a.camera, logger.Named("term"))
	s.OnCommand = a.Apply
	s.Status = a.Status
	s.OnSnapshot = a.Snapshot

	a.log.Info("starting terminal loop")
	return s.Run(ctx)
}
