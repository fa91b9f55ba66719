package monitoring

import (
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

type vecRsp [3]float64

func toVec(v vmath.Vec3F) vecRsp {
	return vecRsp{v.X, v.Y, v.Z}
}

type entityRsp struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	Alpha        float64 `json:"alpha"`
	JustAppeared bool    `json:"just_appeared,omitempty"`
	Position     vecRsp  `json:"position"`
}

type bodyRsp struct {
	ID       string  `json:"id"`
	Angle    float64 `json:"angle"`
	Position vecRsp  `json:"position"`
}

type artifactRsp struct {
	ID        string  `json:"id"`
	Opacity   float64 `json:"opacity"`
	ColorHint string  `json:"color_hint"`
	Start     vecRsp  `json:"start"`
	End       vecRsp  `json:"end"`
}

type frameRsp struct {
	Tick          uint64        `json:"tick"`
	CurrentTime   float64       `json:"current_time"`
	TargetTime    float64       `json:"target_time"`
	Year          string        `json:"year"`
	Progress      float64       `json:"progress"`
	Moving        bool          `json:"moving"`
	Transitioning bool          `json:"transitioning"`
	Velocity      float64       `json:"velocity"`
	LivePeriod    string        `json:"live_period,omitempty"`
	Entities      []entityRsp   `json:"entities"`
	Bodies        []bodyRsp     `json:"bodies"`
	Libration     []vecRsp      `json:"libration,omitempty"`
	Artifacts     []artifactRsp `json:"artifacts"`
}

func newFrameRsp(f *engine.Frame) frameRsp {
	rsp := frameRsp{
		Tick:          f.Tick,
		CurrentTime:   f.CurrentTime,
		TargetTime:    f.TargetTime,
		Year:          f.Year,
		Progress:      f.Progress,
		Moving:        f.Moving,
		Transitioning: f.Transitioning,
		Velocity:      f.Velocity,
		LivePeriod:    f.LivePeriod,
		Entities:      make([]entityRsp, 0, len(f.Entities)),
		Bodies:        make([]bodyRsp, 0, len(f.Bodies)),
		Artifacts:     make([]artifactRsp, 0, len(f.Artifacts)),
	}
	for _, e := range f.Entities {
		rsp.Entities = append(rsp.Entities, entityRsp{
			ID:           e.ID,
			Kind:         e.Kind,
			Alpha:        e.Alpha,
			JustAppeared: e.JustAppeared,
			Position:     toVec(e.Position),
		})
	}
	for _, b := range f.Bodies {
		rsp.Bodies = append(rsp.Bodies, bodyRsp{ID: b.ID, Angle: b.Angle, Position: toVec(b.Position)})
	}
	if f.HasLibration {
		for _, p := range f.Libration.Points() {
			rsp.Libration = append(rsp.Libration, toVec(p))
		}
	}
	for _, a := range f.Artifacts {
		rsp.Artifacts = append(rsp.Artifacts, artifactRsp{
			ID:        a.ID,
			Opacity:   a.Opacity,
			ColorHint: a.ColorHint,
			Start:     toVec(a.StartPoint),
			End:       toVec(a.EndPoint),
		})
	}
	return rsp
}
