package process

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

type fakeWall struct {
	flux float64
	err  error
}

func (w *fakeWall) Solve(reactionTempC float64) (solver.WallSolution, error) {
	if w.err != nil {
		return solver.WallSolution{}, w.err
	}
	return solver.WallSolution{ReactionTempC: reactionTempC, WallTempK: 300, HeatFlux: w.flux}, nil
}

func (w *fakeWall) ReactionHeatFromFlux(heatFlux, residenceHours float64) float64 {
	return heatFlux * residenceHours * 0.01
}

func newTestModel(t *testing.T, wall WallSolver) *Model {
	t.Helper()
	m, err := NewModel(wall, config.DefaultModelSpec())
	require.NoError(t, err)
	return m
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(nil, config.DefaultModelSpec())
	assert.Error(t, err)

	spec := config.DefaultModelSpec()
	spec.Mixer.Viscosity = 0
	_, err = NewModel(&fakeWall{}, spec)
	assert.Error(t, err)
}

func TestEvaluate_Balance(t *testing.T) {
	m := newTestModel(t, &fakeWall{flux: 100})
	f := core.NewFeedstock("rawSRU", 220, 1, core.Properties{HHV: 18, Moisture: 0.5, Density: 800})
	yields := core.Yields{GasYield: 0.1, HCYield: 0.5, HHVHC: 25}

	b, err := m.Evaluate(context.Background(), f, yields)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, b.Quantity, 1e-12)
	assert.InDelta(t, 1.2, b.WaterAdded, 1e-12)
	assert.InDelta(t, 5.2, b.TotalWeight, 1e-12)
	assert.InDelta(t, 1.0, b.HydrocharMass, 1e-12)
	assert.InDelta(t, 0.078, b.CO2, 1e-12)
	assert.InDelta(t, 4.122, b.ProcessWater, 1e-12)
	assert.InDelta(t, 28.815, b.PostProcessingKWh, 1e-12)
	assert.InDelta(t, 1.0, b.ReactionHeatMJ, 1e-12)
	assert.Equal(t, 25.0, b.HydrocharHHV)
	assert.InDelta(t, 18*(1-0.5)*4.0, b.FeedEnergyMJ, 1e-12)

	spec := config.DefaultModelSpec()
	cb := 1e-6*(5.340*(220+273.15)-299)*(1-0.85) + spec.Heating.WaterSpecificHeat*0.85
	wantRamp := 1.2*spec.Heating.WaterSpecificHeat*200*(1.2/5.2) + 4.0*cb*200*(4.0/5.2)
	assert.InDelta(t, wantRamp, b.RampHeatMJ, 1e-12)
	assert.InDelta(t, wantRamp/3.6/1.5, b.RampTimeHr, 1e-12)
	assert.InDelta(t, (1.0+wantRamp)/3.6, b.TotalHeatKWh, 1e-12)
	assert.InDelta(t, b.ElectricityRate*(b.RampTimeHr+1), b.ElectricityKWh, 1e-12)

	wantDensity := (4.0/5.2)*800 + (1.2/5.2)*core.WaterDensity
	assert.InDelta(t, wantDensity, b.MixtureDensity, 1e-9)
	assert.Equal(t, "rawSRU_220C_1hr", b.Scenario.String())
}

func TestEvaluate_MassConservation(t *testing.T) {
	m := newTestModel(t, &fakeWall{flux: 50})
	tests := []struct {
		name     string
		moisture float64
		yields   core.Yields
	}{
		{name: "Test case 1: Dry feed needs water", moisture: 0.3, yields: core.Yields{GasYield: 0.2, HCYield: 0.6}},
		{name: "Test case 2: Wet feed above target", moisture: 0.92, yields: core.Yields{GasYield: 0.05, HCYield: 0.35}},
		{name: "Test case 3: Feed at target", moisture: core.DefaultMoistureTarget, yields: core.Yields{GasYield: 0.1, HCYield: 0.4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := core.NewFeedstock("rawX", 190, 3, core.Properties{Moisture: tt.moisture, Density: 900})
			b, err := m.Evaluate(context.Background(), f, tt.yields)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, b.HydrocharMass, 1e-12)
			assert.InDelta(t, b.TotalWeight, b.HydrocharMass+b.CO2+b.ProcessWater, 1e-12)
			assert.GreaterOrEqual(t, b.WaterAdded, 0.0)
		})
	}
}

func TestEvaluate_ResolvedComposite(t *testing.T) {
	m := newTestModel(t, &fakeWall{flux: 50})
	yields := core.Yields{GasYield: 0.08, HCYield: 0.45, HHVHC: 21}

	tests := []struct {
		name         string
		hydrate      bool
		wantQuantity float64
		wantWater    float64
	}{
		{
			name:         "Test case 1: Hydrated constituents keep the weighted quantity",
			hydrate:      true,
			wantQuantity: 0.5*4 + 0.5*6,
			wantWater:    0,
		},
		{
			name:         "Test case 2: Constituents below target re-derive the quantity",
			hydrate:      false,
			wantQuantity: 1 / (0.45 * (1 - 0.55)),
			wantWater:    1 / (0.45 * (1 - 0.55)) * (1 - core.DefaultMoistureTarget) / (1 - 0.55),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := core.NewRegistry()
			for _, c := range []struct {
				name     string
				moisture float64
				quantity float64
			}{
				{name: "stdA", moisture: 0.5, quantity: 4},
				{name: "stdB", moisture: 0.6, quantity: 6},
			} {
				f := core.NewFeedstock(c.name, 220, 1, core.Properties{HHV: 18, Moisture: c.moisture, Density: 900})
				f.Quantity = c.quantity
				if tt.hydrate {
					f.AddWater()
				}
				require.NoError(t, reg.Add(f))
			}

			blend := core.NewFeedstock("stdA50_stdB50", 220, 1, core.Properties{})
			require.NoError(t, reg.Add(blend))
			require.NoError(t, core.NewCompositeResolver(reg).Resolve(blend))

			b, err := m.Evaluate(context.Background(), blend, yields)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantQuantity, b.Quantity, 1e-12)
			assert.InDelta(t, tt.wantWater, b.WaterAdded, 1e-12)
			assert.InDelta(t, b.TotalWeight, b.HydrocharMass+b.CO2+b.ProcessWater, 1e-12)
		})
	}
}

func TestPrepare_AlreadyHydrated(t *testing.T) {
	m := newTestModel(t, &fakeWall{})
	f := core.NewFeedstock("rawBSG", 250, 1, core.Properties{Moisture: 0.7})
	f.Quantity = 2
	f.AddWater()
	water := f.WaterAdded

	c, err := m.Prepare(f, core.Yields{HCYield: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Quantity())
	assert.Equal(t, water, c.WaterAdded())
}

func TestEvaluate_Errors(t *testing.T) {
	wallErr := fmt.Errorf("no root: %w", core.ErrConvergenceFailure)
	m := newTestModel(t, &fakeWall{err: wallErr})

	f := core.NewFeedstock("rawX", 190, 1, core.Properties{Moisture: 0.5})
	_, err := m.Evaluate(context.Background(), f, core.Yields{HCYield: 0.5})
	assert.True(t, errors.Is(err, core.ErrConvergenceFailure))

	g := core.NewFeedstock("rawX", 190, 1, core.Properties{Moisture: 0.5})
	_, err = m.Evaluate(context.Background(), g, core.Yields{HCYield: 0})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.False(t, g.Hydrated)
}

func TestEvaluate_HeatingRateOverride(t *testing.T) {
	m := newTestModel(t, &fakeWall{flux: 10})
	yields := core.Yields{GasYield: 0.1, HCYield: 0.5}

	base, err := m.Evaluate(context.Background(), core.NewFeedstock("rawX", 220, 1, core.Properties{Moisture: 0.5, Density: 700}), yields)
	require.NoError(t, err)
	fast, err := m.Evaluate(context.Background(), core.NewFeedstock("rawX", 220, 1, core.Properties{Moisture: 0.5, Density: 700}), yields, WithHeatingRate(3000))
	require.NoError(t, err)

	assert.InDelta(t, base.RampTimeHr/2, fast.RampTimeHr, 1e-12)
	assert.InDelta(t, base.RampHeatMJ, fast.RampHeatMJ, 1e-12)
}

func TestEvaluate_RealThermalBalance(t *testing.T) {
	spec := config.DefaultModelSpec()
	tb, err := solver.NewThermalBalance(spec.Reactor, spec.HeatTransfer)
	require.NoError(t, err)
	m := newTestModel(t, tb)

	low, err := m.Evaluate(context.Background(), core.NewFeedstock("rawX", 190, 1, core.Properties{Moisture: 0.5, Density: 700}), core.Yields{GasYield: 0.1, HCYield: 0.5})
	require.NoError(t, err)
	high, err := m.Evaluate(context.Background(), core.NewFeedstock("rawX", 250, 1, core.Properties{Moisture: 0.5, Density: 700}), core.Yields{GasYield: 0.1, HCYield: 0.5})
	require.NoError(t, err)

	assert.Greater(t, low.ReactionHeatMJ, 0.0)
	assert.Greater(t, high.ReactionHeatMJ, low.ReactionHeatMJ)
	assert.Greater(t, high.WallTempK, low.WallTempK)
}

func TestPowerNumber(t *testing.T) {
	m := newTestModel(t, &fakeWall{})
	re := m.Reynolds(1000)
	spec := config.DefaultMixerSpec()
	assert.InDelta(t, spec.ImpellerSpeed*spec.ImpellerDiameter*spec.ImpellerDiameter*1000/spec.Viscosity, re, 1e-9)
	assert.Less(t, m.PowerNumber(2*re), m.PowerNumber(re))
}
