package compat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

func component(slot model.Slot, name string, attrs map[string]any) *model.Component {
	return &model.Component{
		ID:         uuid.NewString(),
		Name:       name,
		Slot:       slot,
		PriceCents: 100000,
		Attributes: attrs,
	}
}

func selectionWith(components ...*model.Component) *model.BuildSelection {
	sel := model.NewBuildSelection(uuid.New())
	for _, c := range components {
		sel.Slots[c.Slot] = c
	}
	return sel
}

func TestRuleSetCheck(t *testing.T) {
	t.Parallel()

	am5CPU := component(model.SlotCPU, "Ryzen 7 7700X", map[string]any{
		model.AttrSocket: "AM5",
	})
	am5Board := component(model.SlotMotherboard, "B650 Tomahawk", map[string]any{
		model.AttrSocket:      "AM5",
		model.AttrMemoryTypes: []string{"DDR5"},
	})
	lga1700Board := component(model.SlotMotherboard, "Z790 Aorus", map[string]any{
		model.AttrSocket:      "LGA1700",
		model.AttrMemoryTypes: []string{"DDR4", "DDR5"},
	})
	ddr5RAM := component(model.SlotRAM, "Fury Beast 32GB", map[string]any{
		model.AttrMemoryType: "DDR5",
	})
	ddr4RAM := component(model.SlotRAM, "Vengeance LPX 16GB", map[string]any{
		model.AttrMemoryType: "DDR4",
	})
	_ = ddr5RAM

	type testCase struct {
		name      string
		candidate *model.Component
		selection *model.BuildSelection
		assert    func(t *testing.T, res Result)
	}

	tests := []testCase{
		{
			name:      "empty selection is always compatible",
			candidate: am5CPU,
			selection: selectionWith(),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
				assert.Empty(t, res.Reason)
			},
		},
		{
			name: "slot with no declared rules is always compatible",
			candidate: component(model.SlotCase, "NZXT H5", map[string]any{
				model.AttrFormFactor: "ATX",
			}),
			selection: selectionWith(am5CPU, lga1700Board, ddr4RAM),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
			},
		},
		{
			name:      "matching sockets: motherboard joins selected cpu",
			candidate: am5Board,
			selection: selectionWith(am5CPU),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
			},
		},
		{
			name:      "socket mismatch: motherboard against selected cpu",
			candidate: lga1700Board,
			selection: selectionWith(am5CPU),
			assert: func(t *testing.T, res Result) {
				require.False(t, res.Compatible)
				assert.Contains(t, res.Reason, "AM5")
				assert.Contains(t, res.Reason, "LGA1700")
				assert.Contains(t, res.Reason, "Ryzen 7 7700X")
			},
		},
		{
			name:      "socket mismatch evaluated symmetrically: cpu against selected motherboard",
			candidate: am5CPU,
			selection: selectionWith(lga1700Board),
			assert: func(t *testing.T, res Result) {
				require.False(t, res.Compatible)
				assert.Contains(t, res.Reason, "socket")
			},
		},
		{
			name:      "ram matches one of the declared memory types",
			candidate: ddr4RAM,
			selection: selectionWith(lga1700Board),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
			},
		},
		{
			name:      "ram memory type unsupported by the board",
			candidate: ddr4RAM,
			selection: selectionWith(am5Board),
			assert: func(t *testing.T, res Result) {
				require.False(t, res.Compatible)
				assert.Contains(t, res.Reason, "DDR4")
				assert.Contains(t, res.Reason, "B650 Tomahawk")
			},
		},
		{
			name: "board declaring a single memory type as plain string",
			candidate: component(model.SlotRAM, "Trident Z 32GB", map[string]any{
				model.AttrMemoryType: "DDR5",
			}),
			selection: selectionWith(component(model.SlotMotherboard, "B650M Mini", map[string]any{
				model.AttrMemoryTypes: "DDR5",
			})),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
			},
		},
		{
			name:      "board replacement is checked against selected ram",
			candidate: am5Board,
			selection: selectionWith(ddr4RAM),
			assert: func(t *testing.T, res Result) {
				require.False(t, res.Compatible)
				assert.Contains(t, res.Reason, "memory type")
			},
		},
		{
			name: "candidate missing the attribute passes",
			candidate: component(model.SlotCPU, "Mystery CPU", map[string]any{}),
			selection: selectionWith(am5Board),
			assert: func(t *testing.T, res Result) {
				assert.True(t, res.Compatible)
			},
		},
	}

	rs := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := rs.Check(tt.candidate, tt.selection)
			tt.assert(t, res)
		})
	}
}

func TestRuleSetCheckDeterministic(t *testing.T) {
	t.Parallel()

	rs := Default()
	cpu := component(model.SlotCPU, "Ryzen 5 7600", map[string]any{model.AttrSocket: "AM5"})
	sel := selectionWith(component(model.SlotMotherboard, "Z790", map[string]any{model.AttrSocket: "LGA1700"}))

	first := rs.Check(cpu, sel)
	second := rs.Check(cpu, sel)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, sel.Occupied(), "check must not mutate the selection")
}

func TestRuleSetCheckShortCircuits(t *testing.T) {
	t.Parallel()

	// Both rules would fail for this board; only the first reason is
	// reported.
	board := component(model.SlotMotherboard, "H610M", map[string]any{
		model.AttrSocket:      "LGA1700",
		model.AttrMemoryTypes: []string{"DDR4"},
	})
	sel := selectionWith(
		component(model.SlotCPU, "Ryzen 9 7950X", map[string]any{model.AttrSocket: "AM5"}),
		component(model.SlotRAM, "Fury 32GB", map[string]any{model.AttrMemoryType: "DDR5"}),
	)

	res := Default().Check(board, sel)
	require.False(t, res.Compatible)
	assert.Contains(t, res.Reason, "socket")
	assert.NotContains(t, res.Reason, "memory type")
}
