package app

import (
	"time"

	"go.uber.org/zap"
)

// App binds the scheduler to the HTTP handlers.
type App struct {
	Scheduler *Scheduler
	Log       *zap.Logger
	// Now anchors requests that omit a date. Defaults to time.Now.
	Now func() time.Time
}

func New(s *Scheduler, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{Scheduler: s, Log: log, Now: time.Now}
}
