package services

import (
	"errors"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar() (CalendarServiceInterface, *collections.Registry) {
	registry, _ := newRegistry()
	return NewCalendarService(utcConfig(), registry, &testutil.MockLogger{}), registry
}

func TestCalendarService_CreateNormalizes(t *testing.T) {
	cs, _ := newTestCalendar()

	ev, err := cs.Create(models.CalendarEvent{Title: "  Calculus final  ", Date: "2024-03-11", Time: "14:30"})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "Calculus final", ev.Title)
	assert.Equal(t, models.EventTypeOther, ev.Type)
	assert.Equal(t, models.CategoryStudy, ev.Category)
}

func TestCalendarService_CreateRejectsInvalid(t *testing.T) {
	cs, _ := newTestCalendar()

	cases := []models.CalendarEvent{
		{Title: "", Date: "2024-03-11"},
		{Title: "x", Date: "March 11"},
		{Title: "x", Date: "2024-03-11", Time: "24:00"},
		{Title: "x", Date: "2024-03-11", Type: "party"},
		{Title: "x", Date: "2024-03-11", Category: "work"},
	}
	for _, c := range cases {
		_, err := cs.Create(c)
		assert.True(t, errors.Is(err, models.ErrInvalidRecord), "%+v", c)
	}
	assert.Empty(t, cs.List())
}

func TestCalendarService_UpdateMoveDuplicateDelete(t *testing.T) {
	cs, _ := newTestCalendar()
	ev, err := cs.Create(models.CalendarEvent{Title: "Essay", Date: "2024-03-11", Time: "09:00", Type: models.EventTypeAssignment})
	require.NoError(t, err)

	edited := *ev
	edited.Description = "2000 words"
	_, err = cs.Update(edited)
	require.NoError(t, err)
	got, _ := cs.Get(ev.ID)
	assert.Equal(t, "2000 words", got.Description)

	moved, err := cs.Move(ev.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", moved.Date)
	assert.Equal(t, "09:00", moved.Time)

	_, err = cs.Move(ev.ID, "someday")
	assert.True(t, errors.Is(err, models.ErrInvalidRecord))

	dup, err := cs.Duplicate(ev.ID, "2024-03-20")
	require.NoError(t, err)
	assert.NotEqual(t, ev.ID, dup.ID)
	assert.Equal(t, "Essay", dup.Title)
	assert.Equal(t, "2024-03-20", dup.Date)

	same, err := cs.Duplicate(ev.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", same.Date)
	assert.Len(t, cs.List(), 3)

	require.NoError(t, cs.Delete(ev.ID))
	assert.True(t, errors.Is(cs.Delete(ev.ID), collections.ErrNotFound))
	_, err = cs.Move(ev.ID, "2024-03-01")
	assert.True(t, errors.Is(err, collections.ErrNotFound))
	_, err = cs.Duplicate(ev.ID, "")
	assert.True(t, errors.Is(err, collections.ErrNotFound))
}

func TestCalendarService_ListByDateAndMonth(t *testing.T) {
	cs, _ := newTestCalendar()
	for _, e := range []models.CalendarEvent{
		{Title: "c", Date: "2024-03-20", Time: "08:00"},
		{Title: "b", Date: "2024-03-11", Time: "15:00"},
		{Title: "a", Date: "2024-03-11", Time: "09:00"},
		{Title: "x", Date: "2024-04-01"},
	} {
		_, err := cs.Create(e)
		require.NoError(t, err)
	}

	assert.Len(t, cs.ListByDate("2024-03-11"), 2)

	march := cs.ListByMonth("2024-03")
	require.Len(t, march, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{march[0].Title, march[1].Title, march[2].Title})
	assert.Empty(t, cs.ListByMonth("2023-03"))
}

func TestCalendarService_ExportICS(t *testing.T) {
	cs, _ := newTestCalendar()
	timed, err := cs.Create(models.CalendarEvent{Title: "Physics exam", Date: "2024-03-11", Time: "14:30", Type: models.EventTypeExam})
	require.NoError(t, err)
	_, err = cs.Create(models.CalendarEvent{Title: "Birthday", Date: "2024-03-12", Category: models.CategoryPersonal})
	require.NoError(t, err)

	ics := cs.ExportICS()
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "UID:"+timed.ID)
	assert.Contains(t, ics, "SUMMARY:Physics exam")
	assert.Contains(t, ics, "20240311T143000Z")
	assert.Contains(t, ics, "SUMMARY:Birthday")
	assert.Contains(t, ics, "VALUE=DATE:20240312")
}
