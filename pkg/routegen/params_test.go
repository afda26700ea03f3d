package routegen

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

func TestParamsJSONNames(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{
		"inBaseHi": 40, "inTopHi": 200, "inStepCount": 10, "inToleranceWidth": 12,
		"nesting": "standoff", "degeneracy": "drop", "coordinates": "geographic"
	}`), &p))

	assert.Equal(t, Params{
		BaseHeight:     40,
		TopHeight:      200,
		StepCount:      10,
		ToleranceWidth: 12,
		Nesting:        NestStandoff,
		Degeneracy:     DropDegenerate,
		Coordinates:    footprint.Geographic,
	}, p)

	out, err := json.Marshal(DefaultParams())
	require.NoError(t, err)
	assert.JSONEq(t, `{"inBaseHi":0,"inTopHi":20,"inStepCount":4,"inToleranceWidth":6,"coordinates":"geographic"}`, string(out))

	// Fields left out of a request keep their defaults.
	partial := DefaultParams()
	require.NoError(t, json.Unmarshal([]byte(`{"inStepCount":3}`), &partial))
	want := DefaultParams()
	want.StepCount = 3
	assert.Equal(t, want, partial)
}

func TestParamsUnknownPolicy(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"nesting":"zigzag"}`), &p)
	assert.Equal(t, errors.ErrInvalidParameters, errors.Kind(err))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	for name, mutate := range map[string]func(*Params){
		"zero steps":     func(p *Params) { p.StepCount = 0 },
		"too many steps": func(p *Params) { p.StepCount = MaxStepCount + 1 },
		"negative base":  func(p *Params) { p.BaseHeight = -1 },
		"flat":           func(p *Params) { p.TopHeight = p.BaseHeight },
		"upside down":    func(p *Params) { p.TopHeight = -5 },
		"negative width": func(p *Params) { p.ToleranceWidth = -0.1 },
		"nan width":      func(p *Params) { p.ToleranceWidth = math.NaN() },
		"infinite top":   func(p *Params) { p.TopHeight = math.Inf(1) },
		"nesting":        func(p *Params) { p.Nesting = 7 },
		"degeneracy":     func(p *Params) { p.Degeneracy = -1 },
		"coordinates":    func(p *Params) { p.Coordinates = 9 },
	} {
		p := DefaultParams()
		mutate(&p)
		err := p.Validate()
		assert.Equal(t, errors.ErrInvalidParameters, errors.Kind(err), name)
	}
}

func TestPolicyNames(t *testing.T) {
	assert.Equal(t, "inward", NestInward.String())
	assert.Equal(t, "standoff", NestStandoff.String())
	assert.Equal(t, "NestingPolicy(5)", NestingPolicy(5).String())
	assert.Equal(t, "drop", DropDegenerate.String())

	var n NestingPolicy = NestOutward
	require.NoError(t, n.UnmarshalText([]byte("")))
	assert.Equal(t, NestInward, n)
	require.NoError(t, n.UnmarshalText([]byte(" Outward ")))
	assert.Equal(t, NestOutward, n)
}
