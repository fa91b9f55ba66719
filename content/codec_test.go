package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Entities, 7)
	assert.Len(t, ds.Periods, 2)
	assert.Len(t, ds.Bodies, 2)
	require.NotNil(t, ds.Binary)
	assert.Equal(t, "terra", ds.Binary.PrimaryID)
	assert.Equal(t, 30.0, ds.Binary.SeparationDistance)

	ceres, ok := ds.Entity("ceres-outpost")
	require.True(t, ok)
	assert.Equal(t, 12.0, ceres.ValidityStart)
	assert.Equal(t, 64.0, ceres.ValidityEnd)
	assert.Equal(t, vmath.Vec3F{X: -18, Y: 2, Z: 9}, ceres.Position)

	gateway, _ := ds.Entity("gateway-l4")
	assert.True(t, gateway.OpenEnd())
	assert.False(t, gateway.OpenStart())

	mirror, _ := ds.Entity("mirror-array")
	assert.True(t, mirror.OpenStart())

	assert.Equal(t, "Belt Skirmish", ds.Periods[0].Name)
	assert.Equal(t, "amber", ds.Periods[0].StyleHint)

	assert.Equal(t, "tender", ds.Bodies[1].ID)
	assert.Equal(t, 1.5, ds.Bodies[1].AngularPosition)
	assert.Equal(t, -0.9, ds.Bodies[1].AngularRate)
}

func TestDecodeDefaultsBodyRate(t *testing.T) {
	ds, err := Decode([]byte(`
[[entity]]
id = "hub"
position = [0.0, 0.0, 0.0]

[[body]]
id = "drone"
primary = "hub"
radius = 4.0
`), "inline")
	require.NoError(t, err)
	require.Len(t, ds.Bodies, 1)
	assert.Equal(t, parameter.DefaultAngularRate, ds.Bodies[0].AngularRate)
	assert.Equal(t, component.AlwaysValidStart, ds.Entities[0].ValidityStart)
	assert.Equal(t, component.AlwaysValidEnd, ds.Entities[0].ValidityEnd)
	assert.Nil(t, ds.Binary)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name: "Duplicate entity",
			data: `
[[entity]]
id = "a"
position = [0.0, 0.0, 0.0]
[[entity]]
id = "a"
position = [1.0, 0.0, 0.0]
`,
			wantErr: ErrDuplicateID,
		},
		{
			name: "Body shadows entity",
			data: `
[[entity]]
id = "a"
position = [0.0, 0.0, 0.0]
[[body]]
id = "a"
primary = "a"
radius = 1.0
`,
			wantErr: ErrDuplicateID,
		},
		{
			name: "Unknown primary",
			data: `
[[body]]
id = "orphan"
primary = "nowhere"
radius = 1.0
`,
			wantErr: ErrUnknownPrimary,
		},
		{
			name: "Empty period name",
			data: `
[[period]]
name = ""
start = 1.0
end = 2.0
`,
			wantErr: ErrEmptyName,
		},
		{
			name: "Bad mass ratio",
			data: `
[binary]
separation = 10.0
mass_ratio = 0.9
`,
			wantErr: ErrInvalidBinary,
		},
		{
			name: "Unknown secondary",
			data: `
[binary]
primary = "terra"
secondary = "ghost"
separation = 10.0
mass_ratio = 0.01
[[entity]]
id = "terra"
position = [0.0, 0.0, 0.0]
`,
			wantErr: ErrUnknownSecondary,
		},
		{
			name: "Secondary is primary",
			data: `
[binary]
primary = "terra"
secondary = "terra"
separation = 10.0
mass_ratio = 0.01
[[entity]]
id = "terra"
position = [0.0, 0.0, 0.0]
`,
			wantErr: ErrInvalidBinary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), "inline")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte(`
[[entity]]
id = "a"
colour = "red"
position = [0.0, 0.0, 0.0]
`), "inline")
	assert.Error(t, err)
}

func TestDecodeKeepsEmptyWindows(t *testing.T) {
	ds, err := Decode([]byte(`
[[entity]]
id = "never"
start = 60.0
end = 50.0
position = [0.0, 0.0, 0.0]
`), "inline")
	require.NoError(t, err)
	assert.Equal(t, 60.0, ds.Entities[0].ValidityStart)
}

func TestEncodeRoundTrip(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	data, err := Encode(ds)
	require.NoError(t, err)

	back, err := Decode(data, DefaultSource)
	require.NoError(t, err)
	assert.Equal(t, ds, back)
}

func TestDatasetClone(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	c := ds.Clone()
	c.Entities[0].ID = "changed"
	c.Binary.SeparationDistance = 1

	assert.Equal(t, "terra", ds.Entities[0].ID)
	assert.Equal(t, 30.0, ds.Binary.SeparationDistance)

	var nilDataset *Dataset
	assert.Nil(t, nilDataset.Clone())
}
