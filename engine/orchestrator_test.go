package engine

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/content"
)

// traceSystem records its calls into a shared log
type traceSystem struct {
	name     string
	priority int
	log      *[]string
	seen     []float64
	datasets []*content.Dataset
}

func (s *traceSystem) Name() string  { return s.name }
func (s *traceSystem) Priority() int { return s.priority }

func (s *traceSystem) Update(tl Timeline, frame *Frame) {
	*s.log = append(*s.log, s.name)
	s.seen = append(s.seen, tl.CurrentTime())
	frame.LivePeriod = s.name
}

func (s *traceSystem) LoadDataset(ds *content.Dataset) {
	s.datasets = append(s.datasets, ds)
}

var _ = Describe("Orchestrator", func() {
	var (
		mockCtrl  *gomock.Controller
		presenter *MockPresenter
		clock     *MockTimeProvider
		tl        *TimeController
		queue     *InputQueue
		orch      *Orchestrator
		calls     []string
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		presenter = NewMockPresenter(mockCtrl)
		clock = NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		tl = NewTimeController(DefaultTimelineConfig(), clock)
		queue = NewInputQueue(16)
		orch = NewOrchestrator(tl, clock, queue)
		calls = nil
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run systems in priority order, stable for ties", func() {
		orch.AddSystem(&traceSystem{name: "late", priority: 30, log: &calls})
		orch.AddSystem(&traceSystem{name: "early", priority: 10, log: &calls})
		orch.AddSystem(&traceSystem{name: "tie-a", priority: 20, log: &calls})
		orch.AddSystem(&traceSystem{name: "tie-b", priority: 20, log: &calls})

		orch.Tick()

		Expect(calls).To(Equal([]string{"early", "tie-a", "tie-b", "late"}))
	})

	It("should hand every presenter the finished frame", func() {
		orch.AddSystem(&traceSystem{name: "only", priority: 1, log: &calls})
		orch.AddPresenter(presenter)

		presenter.EXPECT().Present(gomock.Any()).Do(func(f *Frame) {
			Expect(f.Tick).To(Equal(uint64(1)))
			Expect(f.CurrentTime).To(Equal(79.0))
			Expect(f.Year).To(Equal("Year 79"))
			Expect(f.LivePeriod).To(Equal("only"))
			Expect(f.WallTime).To(Equal(clock.Now()))
		})

		orch.Tick()
		Expect(orch.TickCount()).To(Equal(uint64(1)))
	})

	It("should apply queued input before the timeline update of the same tick", func() {
		sys := &traceSystem{name: "reader", priority: 1, log: &calls}
		orch.AddSystem(sys)

		queue.Jump(100)
		f := orch.Tick()

		Expect(f.TargetTime).To(Equal(100.0))
		Expect(sys.seen[0]).To(BeNumerically("~", 79+21*0.08, 1e-12))
		Expect(f.Moving).To(BeTrue())
		Expect(f.Transitioning).To(BeTrue())
		Expect(f.Velocity).To(BeNumerically(">", 0))
	})

	It("should apply scroll commands in arrival order", func() {
		queue.Scroll(2)
		queue.Jump(10)
		queue.Scroll(2)
		orch.Tick()

		Expect(tl.TargetTime()).To(Equal(11.0))
	})

	It("should load the dataset into systems added later", func() {
		ds := &content.Dataset{Source: "test"}
		orch.LoadDataset(ds)

		sys := &traceSystem{name: "late", priority: 1, log: &calls}
		orch.AddSystem(sys)

		Expect(sys.datasets).To(ConsistOf(ds))
		Expect(orch.Dataset()).To(BeIdenticalTo(ds))
	})

	It("should swap datasets through the input queue", func() {
		sys := &traceSystem{name: "loader", priority: 1, log: &calls}
		orch.AddSystem(sys)

		next := &content.Dataset{
			Source:  "next",
			Periods: []component.ActivePeriod{{Name: "p", Start: 1, End: 2}},
		}
		Expect(queue.ReplaceDataset(next)).To(BeTrue())
		orch.Tick()

		Expect(sys.datasets).To(HaveLen(1))
		Expect(sys.datasets[0].Source).To(Equal("next"))
	})

	It("should reuse the frame and clear per-tick outputs", func() {
		orch.AddSystem(System(&appendSystem{}))

		f1 := orch.Tick()
		Expect(f1.Entities).To(HaveLen(1))
		f2 := orch.Tick()
		Expect(f2).To(BeIdenticalTo(f1))
		Expect(f2.Entities).To(HaveLen(1))
	})

	It("should stop running when the tick callback declines", func() {
		n := 0
		err := orch.Run(context.Background(), time.Millisecond, func(f *Frame) bool {
			n++
			return n < 3
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(3))
		Expect(orch.TickCount()).To(Equal(uint64(3)))
	})

	It("should return the context error on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := orch.Run(ctx, time.Hour, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})

type appendSystem struct{}

func (appendSystem) Name() string  { return "append" }
func (appendSystem) Priority() int { return 0 }
func (appendSystem) Update(_ Timeline, frame *Frame) {
	frame.Entities = append(frame.Entities, EntityView{ID: "e", Alpha: 1})
}
