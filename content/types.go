package content

import (
	"github.com/lixenwraith/orrery/component"
)

// Dataset is the startup input to the core: validity windows, active periods and orbit definitions
// Produced by the dataset file or the embedded default; read-only once handed to the orchestrator
type Dataset struct {
	Source   string
	Entities []component.TemporalEntity
	Periods  []component.ActivePeriod // Priority order, first live match wins
	Bodies   []component.OrbitingBody
	Binary   *component.BinarySystem
}

// Entity returns the entity with the given ID
func (d *Dataset) Entity(id string) (*component.TemporalEntity, bool) {
	for i := range d.Entities {
		if d.Entities[i].ID == id {
			return &d.Entities[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy safe to hand to another owner
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	c := &Dataset{
		Source:   d.Source,
		Entities: append([]component.TemporalEntity(nil), d.Entities...),
		Periods:  append([]component.ActivePeriod(nil), d.Periods...),
		Bodies:   append([]component.OrbitingBody(nil), d.Bodies...),
	}
	if d.Binary != nil {
		b := *d.Binary
		c.Binary = &b
	}
	return c
}

// fileDataset is the TOML layout of a dataset file
type fileDataset struct {
	Binary   *fileBinary  `toml:"binary,omitempty"`
	Entities []fileEntity `toml:"entity"`
	Periods  []filePeriod `toml:"period"`
	Bodies   []fileBody   `toml:"body"`
}

type fileBinary struct {
	Primary    string  `toml:"primary"`
	Secondary  string  `toml:"secondary"`
	Separation float64 `toml:"separation"`
	MassRatio  float64 `toml:"mass_ratio"`
}

// Missing start or end means the window is open on that side
type fileEntity struct {
	ID       string     `toml:"id"`
	Kind     string     `toml:"kind,omitempty"`
	Start    *float64   `toml:"start,omitempty"`
	End      *float64   `toml:"end,omitempty"`
	Position [3]float64 `toml:"position"`
}

type filePeriod struct {
	Name  string  `toml:"name"`
	Start float64 `toml:"start"`
	End   float64 `toml:"end"`
	Style string  `toml:"style,omitempty"`
}

type fileBody struct {
	ID      string   `toml:"id"`
	Primary string   `toml:"primary,omitempty"`
	Radius  float64  `toml:"radius"`
	Angle   float64  `toml:"angle,omitempty"`
	Rate    *float64 `toml:"rate,omitempty"`
}
