package content

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Decode parses a TOML dataset and validates it
func Decode(data []byte, source string) (*Dataset, error) {
	var fd fileDataset
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fd); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", source, err)
	}

	ds := fromFile(&fd)
	ds.Source = source

	if err := Validate(ds); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", source, err)
	}
	return ds, nil
}

// Encode renders a dataset back to TOML
func Encode(ds *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(toFile(ds)); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

func fromFile(fd *fileDataset) *Dataset {
	ds := &Dataset{
		Entities: make([]component.TemporalEntity, 0, len(fd.Entities)),
		Periods:  make([]component.ActivePeriod, 0, len(fd.Periods)),
		Bodies:   make([]component.OrbitingBody, 0, len(fd.Bodies)),
	}

	if fd.Binary != nil {
		ds.Binary = &component.BinarySystem{
			PrimaryID:          fd.Binary.Primary,
			SecondaryID:        fd.Binary.Secondary,
			SeparationDistance: fd.Binary.Separation,
			MassRatio:          fd.Binary.MassRatio,
		}
	}

	for _, fe := range fd.Entities {
		e := component.TemporalEntity{
			ID:            fe.ID,
			Kind:          fe.Kind,
			ValidityStart: component.AlwaysValidStart,
			ValidityEnd:   component.AlwaysValidEnd,
			Position:      vmath.Vec3F{X: fe.Position[0], Y: fe.Position[1], Z: fe.Position[2]},
		}
		if fe.Start != nil {
			e.ValidityStart = *fe.Start
		}
		if fe.End != nil {
			e.ValidityEnd = *fe.End
		}
		ds.Entities = append(ds.Entities, e)
	}

	for _, fp := range fd.Periods {
		ds.Periods = append(ds.Periods, component.ActivePeriod{
			Name:      fp.Name,
			Start:     fp.Start,
			End:       fp.End,
			StyleHint: fp.Style,
		})
	}

	for _, fb := range fd.Bodies {
		rate := parameter.DefaultAngularRate
		if fb.Rate != nil {
			rate = *fb.Rate
		}
		ds.Bodies = append(ds.Bodies, component.OrbitingBody{
			ID:              fb.ID,
			PrimaryID:       fb.Primary,
			PrimaryDistance: fb.Radius,
			AngularPosition: vmath.WrapAngle(fb.Angle),
			AngularRate:     rate,
		})
	}

	return ds
}

func toFile(ds *Dataset) *fileDataset {
	fd := &fileDataset{}

	if ds.Binary != nil {
		fd.Binary = &fileBinary{
			Primary:    ds.Binary.PrimaryID,
			Secondary:  ds.Binary.SecondaryID,
			Separation: ds.Binary.SeparationDistance,
			MassRatio:  ds.Binary.MassRatio,
		}
	}

	for i := range ds.Entities {
		e := &ds.Entities[i]
		fe := fileEntity{
			ID:       e.ID,
			Kind:     e.Kind,
			Position: [3]float64{e.Position.X, e.Position.Y, e.Position.Z},
		}
		if !e.OpenStart() {
			start := e.ValidityStart
			fe.Start = &start
		}
		if !e.OpenEnd() {
			end := e.ValidityEnd
			fe.End = &end
		}
		fd.Entities = append(fd.Entities, fe)
	}

	for _, p := range ds.Periods {
		fd.Periods = append(fd.Periods, filePeriod{Name: p.Name, Start: p.Start, End: p.End, Style: p.StyleHint})
	}

	for _, b := range ds.Bodies {
		rate := b.AngularRate
		fd.Bodies = append(fd.Bodies, fileBody{
			ID:      b.ID,
			Primary: b.PrimaryID,
			Radius:  b.PrimaryDistance,
			Angle:   b.AngularPosition,
			Rate:    &rate,
		})
	}

	return fd
}
