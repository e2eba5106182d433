package usecase

import "time"

// SetReportClock replaces the clock used by uc.
func SetReportClock(uc *ReportUseCase, now func() time.Time) {
	uc.now = now
}
