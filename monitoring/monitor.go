// Package monitoring serves the live frame stream and timeline controls over HTTP
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/lixenwraith/orrery/engine"
)

// Monitor is a Presenter that keeps the latest frame for HTTP readers
// Control routes push commands to the orchestrator's input queue; they never touch the timeline directly
type Monitor struct {
	input      *engine.InputQueue
	portNumber int

	mu     sync.Mutex
	latest *engine.Frame

	listener net.Listener
	server   *http.Server
}

// NewMonitor creates a monitor feeding commands into input
func NewMonitor(input *engine.InputQueue) *Monitor {
	return &Monitor{input: input}
}

// WithPortNumber sets the listen port; ports below 1000 select a random port
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}
	m.portNumber = portNumber
	return m
}

// Present implements engine.Presenter
func (m *Monitor) Present(frame *engine.Frame) {
	c := frame.Clone()
	m.mu.Lock()
	m.latest = c
	m.mu.Unlock()
}

// Latest returns the most recent frame, nil before the first tick
func (m *Monitor) Latest() *engine.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// Handler returns the API router
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now).Methods(http.MethodGet)
	r.HandleFunc("/api/frame", m.frame).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/jump/{year}", m.jump).Methods(http.MethodPost)
	r.HandleFunc("/api/scroll/{delta}", m.scroll).Methods(http.MethodPost)
	return r
}

// StartServer listens and serves in the background; returns the bound address
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("monitor listen: %w", err)
	}
	m.listener = listener
	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring timeline with %s\n", url)

	go func() {
		if err := m.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Monitor server stopped: %v", err)
		}
	}()
	return url, nil
}

// OpenBrowser opens url in the system browser
func (m *Monitor) OpenBrowser(url string) {
	if err := browser.OpenURL(url + "/api/frame"); err != nil {
		log.Printf("Open browser failed: %v", err)
	}
}

// Stop shuts the server down
func (m *Monitor) Stop() {
	if m.server != nil {
		m.server.Close()
	}
}

type nowRsp struct {
	Tick        uint64  `json:"tick"`
	CurrentTime float64 `json:"current_time"`
	TargetTime  float64 `json:"target_time"`
	Year        string  `json:"year"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	f := m.Latest()
	if f == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, nowRsp{
		Tick:        f.Tick,
		CurrentTime: f.CurrentTime,
		TargetTime:  f.TargetTime,
		Year:        f.Year,
	})
}

func (m *Monitor) frame(w http.ResponseWriter, _ *http.Request) {
	f := m.Latest()
	if f == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, newFrameRsp(f))
}

type commandRsp struct {
	Accepted bool `json:"accepted"`
}

func (m *Monitor) jump(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.ParseFloat(mux.Vars(r)["year"], 64)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	m.enqueue(w, m.input.Jump(year))
}

func (m *Monitor) scroll(w http.ResponseWriter, r *http.Request) {
	delta, err := strconv.ParseFloat(mux.Vars(r)["delta"], 64)
	if err != nil {
		http.Error(w, "invalid delta", http.StatusBadRequest)
		return
	}
	m.enqueue(w, m.input.Scroll(delta))
}

func (m *Monitor) enqueue(w http.ResponseWriter, ok bool) {
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusAccepted)
	}
	writeJSON(w, commandRsp{Accepted: ok})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS})
}

type profileRsp struct {
	DurationNanos int64            `json:"duration_nanos"`
	Samples       int              `json:"samples"`
	Top           map[string]int64 `json:"top"`
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)
	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := profileRsp{
		DurationNanos: prof.DurationNanos,
		Samples:       len(prof.Sample),
		Top:           make(map[string]int64),
	}
	for _, s := range prof.Sample {
		if len(s.Location) == 0 || len(s.Location[0].Line) == 0 || len(s.Value) == 0 {
			continue
		}
		fn := s.Location[0].Line[0].Function
		if fn == nil {
			continue
		}
		rsp.Top[fn.Name] += s.Value[0]
	}
	writeJSON(w, rsp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Monitor write failed: %v", err)
	}
}
