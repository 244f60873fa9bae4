package notify

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

// LogSink пишет уведомления в журнал приложения.
type LogSink struct {
	logger logger.Logger
}

func NewLogSink(logger logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Send(_ context.Context, n *usecase.CartNotification) error {
	s.logger.Infof("%s: %s (session=%s, source=%s)", n.Title, n.Description, n.SessionID, n.Event.Source)
	return nil
}
