package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestResolve_ExplicitDate(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)}

	d, err := Resolve(clock, "2024-03-08")
	require.NoError(t, err)
	require.Equal(t, "2024-03-08", d.Format(time.DateOnly))
}

func TestResolve_ExplicitDateInvalid(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)}

	for _, bad := range []string{"not-a-date", "2024-13-40", "03/08/2024"} {
		_, err := Resolve(clock, bad)
		require.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestResolve_Weekday(t *testing.T) {
	// Wednesday resolves to itself
	wednesday := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	d, err := Resolve(fixedClock{now: wednesday}, "")
	require.NoError(t, err)
	require.Equal(t, "2024-06-12", d.Format(time.DateOnly))

	// Monday resolves to itself, not the preceding Friday
	monday := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	d, err = Resolve(fixedClock{now: monday}, "")
	require.NoError(t, err)
	require.Equal(t, "2024-06-10", d.Format(time.DateOnly))
}

func TestResolve_Weekend(t *testing.T) {
	// Saturday and Sunday both roll back to Friday
	saturday := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	d, err := Resolve(fixedClock{now: saturday}, "")
	require.NoError(t, err)
	require.Equal(t, "2024-06-14", d.Format(time.DateOnly))

	sunday := time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC)
	d, err = Resolve(fixedClock{now: sunday}, "")
	require.NoError(t, err)
	require.Equal(t, "2024-06-14", d.Format(time.DateOnly))
}

func TestPreviousBusinessDay(t *testing.T) {
	// Monday -> previous Friday
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-06-07", PreviousBusinessDay(monday).Format(time.DateOnly))

	// Thursday -> Wednesday
	thursday := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-06-12", PreviousBusinessDay(thursday).Format(time.DateOnly))
}
