package service

import "stayspot/pkg/model"

const (
	fieldStartDate = "startDate"
	fieldEndDate   = "endDate"

	MessageStartInPast    = "startDate cannot be in the past"
	MessageEndBeforeStart = "endDate cannot be on or before startDate"
	MessageStartConflict  = "Start date conflicts with an existing booking"
	MessageEndConflict    = "End date conflicts with an existing booking"
	MessageAlreadyBooked  = "Sorry, this spot is already booked for the specified dates"
)

// Stay is a closed range of calendar days.
type Stay struct {
	Start model.Date
	End   model.Date
}

func stayOf(b *model.Booking) Stay {
	return Stay{Start: b.StartDate, End: b.EndDate}
}

// contains reports whether d lies in the stay, both ends included.
func (s Stay) contains(d model.Date) bool {
	return !d.Before(s.Start) && !d.After(s.End)
}

// CheckRange reports the problems of a requested stay on its own: a start
// before today and an end not after the start. Both are reported together.
func CheckRange(req Stay, today model.Date) map[string]string {
	var fields map[string]string
	add := func(field, msg string) {
		if fields == nil {
			fields = make(map[string]string, 2)
		}
		fields[field] = msg
	}

	if req.Start.Before(today) {
		add(fieldStartDate, MessageStartInPast)
	}
	if !req.End.After(req.Start) {
		add(fieldEndDate, MessageEndBeforeStart)
	}
	return fields
}

// CheckConflicts reports which ends of req collide with the existing stays.
// Stays are closed, so sharing a single day counts as a collision. A request
// that swallows an existing stay whole collides on both ends.
func CheckConflicts(req Stay, existing []Stay) map[string]string {
	var startHit, endHit bool
	for _, s := range existing {
		if s.contains(req.Start) {
			startHit = true
		}
		if s.contains(req.End) {
			endHit = true
		}
		if req.Start.Before(s.Start) && req.End.After(s.End) {
			startHit, endHit = true, true
		}
		if startHit && endHit {
			break
		}
	}

	if !startHit && !endHit {
		return nil
	}
	fields := make(map[string]string, 2)
	if startHit {
		fields[fieldStartDate] = MessageStartConflict
	}
	if endHit {
		fields[fieldEndDate] = MessageEndConflict
	}
	return fields
}
