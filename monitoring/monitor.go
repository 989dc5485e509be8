// Package monitoring turns a running scheduler into a small HTTP server so
// the simulation can be inspected (and single-stepped) from outside while
// it runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

// A DateFormatter renders the current simulated date for display. The
// calendar package provides one; without it the monitor shows bare ticks.
type DateFormatter interface {
	FormatEra(showHour bool) string
}

// A Monitor exposes a scheduler over HTTP. All endpoints are read-only
// snapshots except /api/turn, which drives the scheduler by exactly one
// turn.
type Monitor struct {
	scheduler     *sim.Scheduler
	dateFormatter DateFormatter
	portNumber    int
	openBrowser   bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// refused and replaced with a random one.
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

// WithBrowser makes StartServer open the monitor page in the default
// browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterScheduler registers the scheduler to monitor.
func (m *Monitor) RegisterScheduler(s *sim.Scheduler) {
	m.scheduler = s
}

// RegisterDateFormatter registers the formatter used to render dates.
func (m *Monitor) RegisterDateFormatter(f DateFormatter) {
	m.dateFormatter = f
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/upcoming", m.upcoming)
	r.HandleFunc("/api/turn", m.turn)
	r.HandleFunc("/api/schedulables", m.listSchedulables)
	r.HandleFunc("/api/schedulable/{id}", m.schedulableDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/status")
	}

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()
}

type nowRsp struct {
	Tick int64  `json:"tick"`
	Date string `json:"date,omitempty"`
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	rsp := nowRsp{Tick: int64(m.scheduler.CurrentTick())}
	if m.dateFormatter != nil {
		rsp.Date = m.dateFormatter.FormatEra(true)
	}

	writeJSON(w, rsp)
}

type statusRsp struct {
	Tick       int64    `json:"tick"`
	Pending    int      `json:"pending"`
	Overflow   int      `json:"overflow"`
	BufferSize int      `json:"buffer_size"`
	Registered []string `json:"registered"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, statusRsp{
		Tick:       int64(m.scheduler.CurrentTick()),
		Pending:    m.scheduler.PendingCount(),
		Overflow:   m.scheduler.OverflowCount(),
		BufferSize: m.scheduler.BufferSize(),
		Registered: m.scheduler.RegisteredIDs(),
	})
}

type upcomingRsp struct {
	Key  string `json:"key"`
	Tick int64  `json:"tick"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (m *Monitor) upcoming(w http.ResponseWriter, r *http.Request) {
	ticks, err := queryInt(r, "ticks", m.scheduler.BufferSize())
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	maxEvents, err := queryInt(r, "max", 0)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	entries := m.scheduler.PeekUpcoming(ticks, maxEvents)

	rsp := make([]upcomingRsp, 0, len(entries))
	for _, e := range entries {
		rsp = append(rsp, upcomingRsp{
			Key:  e.Key,
			Tick: int64(e.Tick),
			Name: e.Value.Name(),
			Kind: e.Value.Kind().String(),
		})
	}

	writeJSON(w, rsp)
}

type turnRsp struct {
	TicksAdvanced int64  `json:"ticks_advanced"`
	ExecutedID    string `json:"executed_id"`
	ExecutedName  string `json:"executed_name"`
	ExecutedKind  string `json:"executed_kind"`
	ExecuteErr    string `json:"execute_err,omitempty"`
	CurrentTick   int64  `json:"current_tick"`
}

func (m *Monitor) turn(w http.ResponseWriter, _ *http.Request) {
	result, err := m.scheduler.ProcessNextTurn()
	if err != nil {
		if errors.Is(err, sim.ErrStalled) {
			httpError(w, http.StatusConflict, err)
			return
		}

		httpError(w, http.StatusInternalServerError, err)
		return
	}

	rsp := turnRsp{
		TicksAdvanced: int64(result.TicksAdvanced),
		ExecutedID:    result.ExecutedID,
		ExecutedName:  result.ExecutedName,
		ExecutedKind:  result.ExecutedKind.String(),
		CurrentTick:   int64(result.CurrentTick),
	}
	if result.ExecuteErr != nil {
		rsp.ExecuteErr = result.ExecuteErr.Error()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listSchedulables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.scheduler.RegisteredIDs())
}

func (m *Monitor) schedulableDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, ok := m.scheduler.Registered(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Schedulable not found"))
		dieOnErr(err)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(item)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)
	fmt.Fprintf(w, "Error: %s", err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
