package out

import (
	"github.com/gen2brain/beeep"

	timerout "studylog/internal/modules/timer/port/out"
)

// DesktopNotifier shows a desktop notification through beeep.
type DesktopNotifier struct{}

func NewDesktopNotifier() timerout.Notifier {
	beeep.AppName = "studylog"
	return DesktopNotifier{}
}

func (DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
