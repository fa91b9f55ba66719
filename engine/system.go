package engine

import (
	"github.com/lixenwraith/orrery/content"
)

// System consumes the freshly advanced timeline and writes its outputs into the frame
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update(tl Timeline, frame *Frame)
}

// DatasetLoader is implemented by systems that derive state from the dataset
type DatasetLoader interface {
	LoadDataset(ds *content.Dataset)
}

// Presenter receives the frame at the end of each tick
// The frame is only valid for the duration of the call
//
//go:generate mockgen -destination "mock_presenter_test.go" -package $GOPACKAGE -write_package_comment=false github.com/lixenwraith/orrery/engine Presenter
type Presenter interface {
	Present(frame *Frame)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(frame *Frame)

// Present implements Presenter
func (f PresenterFunc) Present(frame *Frame) {
	f(frame)
}
