package txstatus

import "time"

// SetClock replaces the service clock used to cap source windows.
func SetClock(svc Service, now func() time.Time) {
	svc.(*statusService).now = now
}
