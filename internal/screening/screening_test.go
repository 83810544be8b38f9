package screening

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHalls = []string{"Zaal 1", "Zaal 2", "Zaal 3"}

func validDraft() Draft {
	return Draft{
		Title:    "Oppenheimer",
		Date:     "2024-06-10",
		Time:     "20:00",
		Duration: 180,
		Hall:     "Zaal 1",
		Genre:    "Biografie/Drama",
	}
}

func TestNew(t *testing.T) {
	s, err := New(validDraft(), testHalls)
	require.NoError(t, err)

	assert.Empty(t, s.ID, "id is assigned by the store")
	assert.Equal(t, "Oppenheimer", s.Title)
	assert.Equal(t, "2024-06-10", s.DateKey())
	assert.Equal(t, "20:00", s.Time)
	assert.Equal(t, 180, s.Duration)
	assert.Equal(t, "Zaal 1", s.Hall)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNew_GenreIsOptional(t *testing.T) {
	d := validDraft()
	d.Genre = ""
	s, err := New(d, testHalls)
	require.NoError(t, err)
	assert.Equal(t, "", s.Genre)
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Draft)
		field  string
	}{
		{"missing title", func(d *Draft) { d.Title = "  " }, "title"},
		{"missing date", func(d *Draft) { d.Date = "" }, "date"},
		{"malformed date", func(d *Draft) { d.Date = "10/06/2024" }, "date"},
		{"missing time", func(d *Draft) { d.Time = "" }, "time"},
		{"hour 24", func(d *Draft) { d.Time = "24:00" }, "time"},
		{"single digit hour", func(d *Draft) { d.Time = "9:00" }, "time"},
		{"zero duration", func(d *Draft) { d.Duration = 0 }, "duration"},
		{"negative duration", func(d *Draft) { d.Duration = -15 }, "duration"},
		{"missing hall", func(d *Draft) { d.Hall = "" }, "hall"},
		{"unknown hall", func(d *Draft) { d.Hall = "Zaal 9" }, "hall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.modify(&d)

			_, err := New(d, testHalls)
			verr, ok := AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.NotEmpty(t, verr.Field(tt.field))
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	err := Validate(Draft{}, testHalls)
	verr, ok := AsValidation(err)
	require.True(t, ok)

	for _, field := range []string{"title", "date", "time", "duration", "hall"} {
		assert.NotEmpty(t, verr.Field(field), field)
	}
	assert.Contains(t, err.Error(), "invalid screening")
}

func TestStartEnd(t *testing.T) {
	s, err := New(Draft{Title: "Late", Date: "2024-06-10", Time: "22:30", Duration: 120, Hall: "Zaal 1"}, testHalls)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 10, 22, 30, 0, 0, time.Local), s.Start())
	assert.Equal(t, time.Date(2024, 6, 11, 0, 30, 0, 0, time.Local), s.End())
}

func TestEnd_HugeDurationStaysAfterStart(t *testing.T) {
	for _, duration := range []int{200_000_000, math.MaxInt} {
		s, err := New(Draft{Title: "Endless", Date: "2024-06-10", Time: "20:00", Duration: duration, Hall: "Zaal 1"}, testHalls)
		require.NoError(t, err)
		assert.True(t, s.End().After(s.Start()), "duration %d", duration)
		assert.True(t, s.End().After(time.Date(2024, 6, 11, 20, 0, 0, 0, time.Local)), "duration %d", duration)
	}
}

func TestApply(t *testing.T) {
	s, err := New(validDraft(), testHalls)
	require.NoError(t, err)
	s.ID = "abc"

	newTime := "21:15"
	newHall := "Zaal 2"
	updated, err := Apply(s, Patch{Time: &newTime, Hall: &newHall}, testHalls)
	require.NoError(t, err)

	assert.Equal(t, "abc", updated.ID)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "21:15", updated.Time)
	assert.Equal(t, "Zaal 2", updated.Hall)
	assert.Equal(t, s.Title, updated.Title)
	assert.Equal(t, "20:00", s.Time, "original must not change")

	badDuration := 0
	_, err = Apply(s, Patch{Duration: &badDuration}, testHalls)
	_, ok := AsValidation(err)
	assert.True(t, ok)
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	title := "x"
	assert.False(t, Patch{Title: &title}.IsEmpty())
}

func TestPatchFrom(t *testing.T) {
	s, err := New(validDraft(), testHalls)
	require.NoError(t, err)

	d := PatchFrom(s).ApplyTo(Draft{})
	assert.Equal(t, s.Draft(), d)
}

func TestRecordRoundTrip(t *testing.T) {
	s, err := New(validDraft(), testHalls)
	require.NoError(t, err)
	s.ID = NewID()

	got, err := FromRecord(s.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.DateKey(), got.DateKey())
	assert.True(t, s.CreatedAt.Truncate(time.Second).Equal(got.CreatedAt))

	_, err = FromRecord(Record{ID: "x", Date: "junk"})
	assert.Error(t, err)
}

func TestFromRecord_RequiresDate(t *testing.T) {
	r := Record{ID: "abc", Title: "Barbie", Time: "20:00", Duration: 114, Hall: "Zaal 1"}
	for _, date := range []string{"", "   "} {
		r.Date = date
		_, err := FromRecord(r)
		require.Error(t, err, "date %q", date)

		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.NotEmpty(t, verr.Field("date"))
	}
}

func TestSortByStart(t *testing.T) {
	mk := func(id, date, tm string) *Screening {
		s, err := New(Draft{Title: id, Date: date, Time: tm, Duration: 30, Hall: "Zaal 1"}, testHalls)
		require.NoError(t, err)
		s.ID = id
		return s
	}
	list := []*Screening{
		mk("c", "2024-06-11", "09:00"),
		mk("b", "2024-06-10", "21:00"),
		mk("a", "2024-06-10", "20:00"),
		mk("a2", "2024-06-10", "20:00"),
	}

	SortByStart(list)

	var ids []string
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"a", "a2", "b", "c"}, ids)
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NotEmpty(t, c)

	f, ok := c.Lookup("  oppenheimer ")
	require.True(t, ok)
	assert.Equal(t, 180, f.Duration)

	_, ok = c.Lookup("")
	assert.False(t, ok)
	_, ok = c.Lookup("Not A Film")
	assert.False(t, ok)

	assert.Equal(t, len(c), len(c.Titles()))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
