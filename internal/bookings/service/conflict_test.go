package service

import (
	"stayspot/pkg/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) model.Date {
	return model.NewDate(2030, time.June, d)
}

func stay(start, end int) Stay {
	return Stay{Start: day(start), End: day(end)}
}

func TestCheckRange(t *testing.T) {
	today := day(10)

	tests := []struct {
		name string
		req  Stay
		want map[string]string
	}{
		{name: "future stay", req: stay(12, 15)},
		{name: "starts today", req: stay(10, 11)},
		{name: "starts yesterday", req: stay(9, 11), want: map[string]string{fieldStartDate: MessageStartInPast}},
		{name: "same day", req: stay(12, 12), want: map[string]string{fieldEndDate: MessageEndBeforeStart}},
		{name: "end before start", req: stay(15, 12), want: map[string]string{fieldEndDate: MessageEndBeforeStart}},
		{
			name: "both reported",
			req:  stay(8, 5),
			want: map[string]string{
				fieldStartDate: MessageStartInPast,
				fieldEndDate:   MessageEndBeforeStart,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckRange(tt.req, today))
		})
	}
}

func TestCheckConflicts(t *testing.T) {
	existing := []Stay{stay(10, 15)}
	both := map[string]string{
		fieldStartDate: MessageStartConflict,
		fieldEndDate:   MessageEndConflict,
	}

	tests := []struct {
		name string
		req  Stay
		want map[string]string
	}{
		{name: "entirely before", req: stay(5, 9)},
		{name: "entirely after", req: stay(16, 20)},
		{name: "exact match", req: stay(10, 15), want: both},
		{name: "start inside", req: stay(12, 20), want: map[string]string{fieldStartDate: MessageStartConflict}},
		{name: "start on existing end", req: stay(15, 20), want: map[string]string{fieldStartDate: MessageStartConflict}},
		{name: "end inside", req: stay(5, 12), want: map[string]string{fieldEndDate: MessageEndConflict}},
		{name: "end on existing start", req: stay(5, 10), want: map[string]string{fieldEndDate: MessageEndConflict}},
		{name: "contains existing", req: stay(5, 20), want: both},
		{name: "contained by existing", req: stay(11, 14), want: both},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckConflicts(tt.req, existing))
		})
	}
}

func TestCheckConflicts_Symmetric(t *testing.T) {
	stays := []Stay{stay(1, 3), stay(3, 5), stay(4, 8), stay(9, 12), stay(2, 10), stay(13, 14)}
	for _, a := range stays {
		for _, b := range stays {
			ab := CheckConflicts(a, []Stay{b}) != nil
			ba := CheckConflicts(b, []Stay{a}) != nil
			assert.Equal(t, ab, ba, "%v vs %v", a, b)
		}
	}
}

func TestCheckConflicts_AcrossBookings(t *testing.T) {
	existing := []Stay{stay(1, 4), stay(20, 25)}

	got := CheckConflicts(stay(3, 22), existing)

	assert.Equal(t, map[string]string{
		fieldStartDate: MessageStartConflict,
		fieldEndDate:   MessageEndConflict,
	}, got)
	assert.Nil(t, CheckConflicts(stay(5, 19), existing))
	assert.Nil(t, CheckConflicts(stay(5, 19), nil))
}
