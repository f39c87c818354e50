package service

import "time"

// Test-only clock hooks. These live in an in-package _test.go file so the
// external test package can pin "now" without widening the production API.

// WithNow pins the stats clock and returns the service for chaining.
func (s *StatsService) WithNow(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// WithNow pins the SMS commit timestamp clock and returns the service.
func (s *SMSService) WithNow(now func() time.Time) *SMSService {
	s.now = now
	return s
}
