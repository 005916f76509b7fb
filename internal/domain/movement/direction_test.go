package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/domain/movement"
)

func TestParseDirection(t *testing.T) {
	cases := []struct {
		label string
		want  entity.Direction
	}{
		{"Entrada", entity.DirectionEntry},
		{"  ENTRADA ", entity.DirectionEntry},
		{"Saída", entity.DirectionExit},
		{"SAÍDA", entity.DirectionExit},
		{"saida", entity.DirectionExit},
		{"Entrada/Saída", entity.DirectionExit},
	}
	for _, tc := range cases {
		got, err := movement.ParseDirection(tc.label)
		require.NoError(t, err, tc.label)
		assert.Equal(t, tc.want, got, tc.label)
	}
}

func TestParseDirection_Desconocido(t *testing.T) {
	for _, label := range []string{"", "transferência", "in"} {
		_, err := movement.ParseDirection(label)
		assert.ErrorIs(t, err, movement.ErrUnknownDirection, label)
	}
}

func TestFoldLabel(t *testing.T) {
	assert.Equal(t, "afiacao", movement.FoldLabel(" Afiação "))
	assert.Equal(t, "erosao", movement.FoldLabel("EROSÃO"))
}
