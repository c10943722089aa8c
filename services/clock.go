package services

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always reports the same instant. Set moves it.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time { return c.At.UTC() }

func (c *FixedClock) Set(t time.Time) { c.At = t }

func (c *FixedClock) Advance(d time.Duration) { c.At = c.At.Add(d) }
