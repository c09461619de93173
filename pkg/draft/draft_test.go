package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCEApplyNeverMutatesInput(t *testing.T) {
	d := NewPCEDraft()
	d, _ = d.Apply(Action{Op: OpSetField, Field: "equipamento", Value: "Macaco 200t"})
	d, _ = d.Apply(Action{Op: OpSetRowField, Index: 0, Field: "nome", Value: "E-01"})

	snapshot := d.Clone()

	actions := []Action{
		{Op: OpAddRow},
		{Op: OpRemoveRow, Index: 0},
		{Op: OpSetField, Field: "tipoEnsaio", Value: "HELICOIDAL"},
		{Op: OpSetRowField, Index: 0, Field: "profundidade", Value: "12,5"},
		{Op: OpToggle, Field: "carregamento", Value: "LENTO"},
	}
	for _, a := range actions {
		_, err := d.Apply(a)
		require.NoError(t, err)
		assert.Equal(t, snapshot, d, "input draft mutated by op %q", a.Op)
	}
}

func TestAddRowPrepends(t *testing.T) {
	d := NewPITDraft()
	d, err := d.Apply(Action{Op: OpSetRowField, Index: 0, Field: "nome", Value: "E-01"})
	require.NoError(t, err)

	d, err = d.Apply(Action{Op: OpAddRow})
	require.NoError(t, err)

	require.Len(t, d.Estacas, 2)
	assert.Equal(t, "", d.Estacas[0].Nome, "new blank row should be first")
	assert.Equal(t, "E-01", d.Estacas[1].Nome)
}

func TestRemoveLastRowReseedsBlank(t *testing.T) {
	d := NewPLACADraft()
	d, err := d.Apply(Action{Op: OpSetRowField, Index: 0, Field: "nome", Value: "P-01"})
	require.NoError(t, err)

	d, err = d.Apply(Action{Op: OpRemoveRow, Index: 0})
	require.NoError(t, err)

	require.Len(t, d.Pontos, 1, "row slice must never be empty")
	assert.Equal(t, PLACAPontoRow{}, d.Pontos[0], "re-seeded row must be all empty strings")
}

func TestRemoveRowOutOfRangeIsNoop(t *testing.T) {
	d := NewPCEDraft()
	d, err := d.Apply(Action{Op: OpSetRowField, Index: 0, Field: "nome", Value: "E-07"})
	require.NoError(t, err)

	got, err := d.Apply(Action{Op: OpRemoveRow, Index: 5})
	require.NoError(t, err)
	assert.Equal(t, d.Estacas, got.Estacas)
}

func TestSetRowFieldTouchesExactlyOneRow(t *testing.T) {
	d := NewPCEDraft()
	d, _ = d.Apply(Action{Op: OpAddRow})
	d, _ = d.Apply(Action{Op: OpAddRow})
	require.Len(t, d.Estacas, 3)

	d, err := d.Apply(Action{Op: OpSetRowField, Index: 1, Field: "diametro", Value: "40"})
	require.NoError(t, err)

	assert.Equal(t, "", d.Estacas[0].Diametro)
	assert.Equal(t, "40", d.Estacas[1].Diametro)
	assert.Equal(t, "", d.Estacas[2].Diametro)
}

func TestToggleOption(t *testing.T) {
	d := NewPCEDraft()

	d, err := d.Apply(Action{Op: OpToggle, Field: "carregamento", Value: "LENTO"})
	require.NoError(t, err)
	d, err = d.Apply(Action{Op: OpToggle, Field: "carregamento", Value: "RAPIDO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"LENTO", "RAPIDO"}, d.Carregamento)

	d, err = d.Apply(Action{Op: OpToggle, Field: "carregamento", Value: "LENTO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"RAPIDO"}, d.Carregamento)
}

func TestConditionalGroupRetainedOnSubtypeChange(t *testing.T) {
	d := NewPCEDraft()
	d, _ = d.Apply(Action{Op: OpSetField, Field: "tipoEnsaio", Value: "HELICOIDAL"})
	d, _ = d.Apply(Action{Op: OpSetField, Field: "horimetroInicio", Value: "102,4"})

	// Moving away from HELICOIDAL must not clear the typed value; the
	// create endpoint strips it at submission instead.
	d, err := d.Apply(Action{Op: OpSetField, Field: "tipoEnsaio", Value: "PRE_MOLDADA"})
	require.NoError(t, err)
	assert.Equal(t, "102,4", d.HorimetroInicio)
}

func TestUnknownOpAndField(t *testing.T) {
	d := NewPDADraft()

	_, err := d.Apply(Action{Op: "rename"})
	assert.ErrorIs(t, err, ErrUnknownOp)

	_, err = d.Apply(Action{Op: OpSetField, Field: "ficha.nonsense"})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = d.Apply(Action{Op: OpSetRowField, Index: 0, Field: "nonsense"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPDAFichaAndDiarioFields(t *testing.T) {
	d := NewPDADraft()
	d, err := d.Apply(Action{Op: OpSetField, Field: "ficha.martelo", Value: "Queda livre 3t"})
	require.NoError(t, err)
	d, err = d.Apply(Action{Op: OpSetField, Field: "diario.horaInicio", Value: "07:30"})
	require.NoError(t, err)

	assert.Equal(t, "Queda livre 3t", d.Ficha.Martelo)
	assert.Equal(t, "07:30", d.Diario.HoraInicio)
}
