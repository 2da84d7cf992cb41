package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrProfilerBusy is returned while a capture is running or cooling down
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *zap.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		logger:          logger.Named("profiler"),
	}
}

// Capture starts a background capture named after reason. It returns
// ErrProfilerBusy instead of overlapping captures.
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling || time.Since(p.lastCaptureTime) < p.captureCooldown {
		return ErrProfilerBusy
	}
	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}

// summarize logs where the capture went and the heap at that moment
func (p *Profiler) summarize(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("profile missing", zap.String("path", path), zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("profile saved",
		zap.String("path", path),
		zap.Int64("bytes", info.Size()),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects),
	)
}

// IsProfiling returns whether a capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
