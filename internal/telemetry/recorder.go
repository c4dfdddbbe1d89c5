package telemetry

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const DefaultRecorderCapacity = 3000

// digestScale quantizes floats before hashing so replays on different
// hosts agree to the micrometre.
const digestScale = 1e6

type Sample struct {
	Tick             uint64
	Origin           locomotion.Vec3
	Displacement     locomotion.Vec3
	Heading          float64
	VerticalVelocity float64
	Grounded         bool
	Jumped           bool
}

// Recorder keeps the most recent samples in a ring buffer. It is safe to
// read from another goroutine while the simulation writes.
type Recorder struct {
	mu     sync.Mutex
	runID  uuid.UUID
	buf    []Sample
	next   int
	filled bool
	total  uint64
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultRecorderCapacity
	}
	return &Recorder{
		runID: uuid.New(),
		buf:   make([]Sample, capacity),
	}
}

func (r *Recorder) RunID() uuid.UUID { return r.runID }

func (r *Recorder) ObserveStep(rep locomotion.StepReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = Sample{
		Tick:             rep.Tick,
		Origin:           rep.Probe.Start,
		Displacement:     rep.Displacement,
		Heading:          rep.State.Heading,
		VerticalVelocity: rep.State.VerticalVelocity,
		Grounded:         rep.State.Grounded,
		Jumped:           rep.Jumped,
	}
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.filled = true
	}
	r.total++
}

// Samples returns the buffered samples, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.filled {
		out := make([]Sample, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]Sample, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Last returns the newest sample.
func (r *Recorder) Last() (Sample, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.total == 0 {
		return Sample{}, false
	}
	i := (r.next - 1 + len(r.buf)) % len(r.buf)
	return r.buf[i], true
}

func (r *Recorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// MaxRise is the largest origin height above the first buffered sample.
func (r *Recorder) MaxRise() float64 {
	samples := r.Samples()
	if len(samples) == 0 {
		return 0
	}
	base := samples[0].Origin.Y
	rise := 0.0
	for _, s := range samples {
		rise = math.Max(rise, s.Origin.Y-base)
	}
	return rise
}

// Digest hashes the buffered trajectory. Two deterministic runs of the same
// input produce the same digest.
func (r *Recorder) Digest() uint64 {
	h := xxhash.New()
	var scratch [8]byte
	putInt := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		_, _ = h.Write(scratch[:])
	}
	putFloat := func(v float64) {
		putInt(uint64(int64(math.Round(v * digestScale))))
	}
	for _, s := range r.Samples() {
		putInt(s.Tick)
		putFloat(s.Origin.X)
		putFloat(s.Origin.Y)
		putFloat(s.Origin.Z)
		putFloat(s.Heading)
		putFloat(s.VerticalVelocity)
		flags := uint64(0)
		if s.Grounded {
			flags |= 1
		}
		if s.Jumped {
			flags |= 2
		}
		putInt(flags)
	}
	return h.Sum64()
}
