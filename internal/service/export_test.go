package service

import "time"

// SetClock replaces the time source used for the case number year
func (s *CaseNumberService) SetClock(now func() time.Time) {
	s.now = now
}
