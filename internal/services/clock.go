package services

import (
	"time"

	"campaignhub/internal/models"
)

// MinimumInfluencerAge is the youngest age at which an influencer profile may be created.
const MinimumInfluencerAge = 14

// Clock decides what "today" is for date rules. Location defaults to UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) Today() models.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.NewDate(now().In(loc))
}

// AgeOn returns the number of whole years between birth and today.
func AgeOn(birth, today models.Date) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}
