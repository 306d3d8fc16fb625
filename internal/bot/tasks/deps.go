// Package tasks implements the scheduled tasks of the birthday bot: the
// daily birthday check and the monthly digest. It includes task definitions,
// dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	"github.com/NiloyRoy69/telebot/internal/birthday"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Service *birthday.Service
}
