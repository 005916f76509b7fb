package movement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/domain/movement"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseTimestamp_FormatosDiaPrimero(t *testing.T) {
	sp := mustLoad(t, "America/Sao_Paulo")
	want := time.Date(2024, 5, 6, 9, 5, 0, 0, sp)

	cases := [][2]string{
		{"06/05/2024", "09:05:00"},
		{"6/5/2024", "9:05"},
		{"06-05-2024", "09:05"},
		{"2024-05-06", "09:05:00"},
		{"06/05/24", "09:05:00"},
		{"2024-05-06 00:00:00", "09:05"},
	}
	for _, c := range cases {
		got, err := movement.ParseTimestamp(c[0], c[1], sp)
		require.NoError(t, err, c)
		assert.True(t, want.Equal(got), "%v => %v", c, got)
	}
}

func TestParseTimestamp_SinHoraEsMedianoche(t *testing.T) {
	sp := mustLoad(t, "America/Sao_Paulo")
	got, err := movement.ParseTimestamp("06/05/2024", "", sp)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 6, 0, 0, 0, 0, sp).Equal(got))
}

func TestParseTimestamp_Invalido(t *testing.T) {
	sp := mustLoad(t, "America/Sao_Paulo")
	for _, c := range [][2]string{
		{"", "09:00"},
		{"31/02/2024", "09:00"},
		{"06/05/2024", "25:00"},
		{"ontem", "09:00"},
	} {
		_, err := movement.ParseTimestamp(c[0], c[1], sp)
		assert.ErrorIs(t, err, movement.ErrInvalidTimestamp, c)
	}
}

func TestParseTimestamp_HorarioDeVerano(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	_, err := movement.ParseTimestamp("10/03/2024", "02:30", ny)
	assert.ErrorIs(t, err, movement.ErrNonexistentTime)

	_, err = movement.ParseTimestamp("03/11/2024", "01:30", ny)
	assert.ErrorIs(t, err, movement.ErrAmbiguousTime)

	got, err := movement.ParseTimestamp("03/11/2024", "03:30", ny)
	require.NoError(t, err)
	_, offset := got.Zone()
	assert.Equal(t, -5*3600, offset)
}
