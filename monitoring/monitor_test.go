package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

var _ = Describe("Monitor", func() {
	var (
		queue   *engine.InputQueue
		monitor *Monitor
		handler http.Handler
	)

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	drain := func() []engine.Command {
		var cmds []engine.Command
		queue.Drain(func(c engine.Command) { cmds = append(cmds, c) })
		return cmds
	}

	BeforeEach(func() {
		queue = engine.NewInputQueue(2)
		monitor = NewMonitor(queue)
		handler = monitor.Handler()
	})

	Context("before the first frame", func() {
		It("should report unavailable", func() {
			Expect(do(http.MethodGet, "/api/now").Code).To(Equal(http.StatusServiceUnavailable))
			Expect(do(http.MethodGet, "/api/frame").Code).To(Equal(http.StatusServiceUnavailable))
			Expect(monitor.Latest()).To(BeNil())
		})
	})

	Context("after a frame", func() {
		var frame *engine.Frame

		BeforeEach(func() {
			frame = &engine.Frame{
				Tick:        7,
				CurrentTime: 78.5,
				TargetTime:  79,
				Year:        "Year 79",
				LivePeriod:  "Siege",
				Entities: []engine.EntityView{
					{ID: "beacon", Kind: "station", Alpha: 0.5, Position: vmath.Vec3F{X: 1, Y: 2, Z: 3}},
				},
				Artifacts: []component.TransientArtifact{
					{ID: "flare", Opacity: 0.8, ColorHint: "amber"},
				},
			}
			monitor.Present(frame)
		})

		It("should keep its own copy", func() {
			frame.Tick = 99
			frame.Entities[0].Alpha = 0

			latest := monitor.Latest()
			Expect(latest.Tick).To(Equal(uint64(7)))
			Expect(latest.Entities[0].Alpha).To(Equal(0.5))
		})

		It("should serve the current time", func() {
			rec := do(http.MethodGet, "/api/now")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

			var rsp nowRsp
			Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
			Expect(rsp).To(Equal(nowRsp{Tick: 7, CurrentTime: 78.5, TargetTime: 79, Year: "Year 79"}))
		})

		It("should serve the full frame", func() {
			rec := do(http.MethodGet, "/api/frame")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var rsp frameRsp
			Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
			Expect(rsp.LivePeriod).To(Equal("Siege"))
			Expect(rsp.Entities).To(HaveLen(1))
			Expect(rsp.Entities[0].Position).To(Equal(vecRsp{1, 2, 3}))
			Expect(rsp.Artifacts).To(HaveLen(1))
			Expect(rsp.Artifacts[0].ColorHint).To(Equal("amber"))
			Expect(rsp.Libration).To(BeEmpty())
			Expect(rsp.Bodies).To(BeEmpty())
		})
	})

	Context("control routes", func() {
		It("should enqueue a jump", func() {
			rec := do(http.MethodPost, "/api/jump/42.5")
			Expect(rec.Code).To(Equal(http.StatusAccepted))
			Expect(rec.Body.String()).To(ContainSubstring(`"accepted":true`))

			Expect(drain()).To(Equal([]engine.Command{{Kind: engine.CommandJump, Value: 42.5}}))
		})

		It("should enqueue a negative scroll", func() {
			Expect(do(http.MethodPost, "/api/scroll/-3").Code).To(Equal(http.StatusAccepted))
			Expect(drain()).To(Equal([]engine.Command{{Kind: engine.CommandScroll, Value: -3}}))
		})

		It("should reject malformed numbers", func() {
			Expect(do(http.MethodPost, "/api/jump/soon").Code).To(Equal(http.StatusBadRequest))
			Expect(do(http.MethodPost, "/api/scroll/up").Code).To(Equal(http.StatusBadRequest))
			Expect(drain()).To(BeEmpty())
		})

		It("should report a full queue", func() {
			do(http.MethodPost, "/api/scroll/1")
			do(http.MethodPost, "/api/scroll/1")

			rec := do(http.MethodPost, "/api/scroll/1")
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(rec.Body.String()).To(ContainSubstring(`"accepted":false`))
			Expect(queue.Dropped()).To(Equal(uint64(1)))
		})

		It("should not accept GET on control routes", func() {
			Expect(do(http.MethodGet, "/api/jump/10").Code).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Context("port selection", func() {
		It("should replace reserved ports with a random one", func() {
			Expect(NewMonitor(queue).WithPortNumber(80).portNumber).To(Equal(0))
			Expect(NewMonitor(queue).WithPortNumber(8080).portNumber).To(Equal(8080))
		})
	})

	Context("server", func() {
		It("should serve on a random port", func() {
			url, err := monitor.WithPortNumber(0).StartServer()
			Expect(err).NotTo(HaveOccurred())
			defer monitor.Stop()

			rsp, err := http.Get(url + "/api/now")
			Expect(err).NotTo(HaveOccurred())
			defer rsp.Body.Close()
			Expect(rsp.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
