package cdt

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cdt-sim/cdt-sim/cdt/geometry"
)

// Metadata describes the fixed shape of a triangulation. It never
// changes over a run; only the complex underneath does.
type Metadata struct {
	Dimension  int
	TimeSlices int
}

// EventKind tags entries in the triangulation's event log.
type EventKind int

const (
	EventCreated EventKind = iota
	EventMoveAttempted
	EventMoveAccepted
	EventMeasurementTaken
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventMoveAttempted:
		return "move-attempted"
	case EventMoveAccepted:
		return "move-accepted"
	case EventMeasurementTaken:
		return "measurement-taken"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one entry in the append-only history of a triangulation.
type Event struct {
	Kind   EventKind
	Detail string
}

// cachedValue pairs a derived quantity with the modification count it
// was computed at. It is valid only while the counts still agree.
type cachedValue[T any] struct {
	value    T
	modCount uint64
	valid    bool
}

func (c *cachedValue[T]) get(current uint64) (T, bool) {
	if c.valid && c.modCount == current {
		return c.value, true
	}
	var zero T
	return zero, false
}

func (c *cachedValue[T]) put(v T, current uint64) {
	c.value = v
	c.modCount = current
	c.valid = true
}

func (c *cachedValue[T]) invalidate() { c.valid = false }

// Triangulation wraps a geometry backend with the bookkeeping CDT
// needs: metadata, an event history, a modification counter and a
// cache for the expensive derived edge count.
//
// Read access goes through Geometry(); write access through Mutable(),
// which bumps the modification counter and drops the cache before
// handing out the mutator. Releasing mutable access is therefore not a
// thing the caller can forget. Not safe for concurrent use.
type Triangulation struct {
	backend geometry.Mutator
	meta    Metadata

	createdAt  time.Time
	modifiedAt time.Time

	modificationCount uint64
	edgeCount         cachedValue[int]

	events []Event
}

// NewTriangulation wraps an existing backend. The event log starts
// with a creation entry.
func NewTriangulation(backend geometry.Mutator, meta Metadata) *Triangulation {
	now := time.Now()
	t := &Triangulation{backend: backend, meta: meta, createdAt: now, modifiedAt: now}
	t.RecordEvent(EventCreated, fmt.Sprintf("%s backend, %d vertices", backend.Name(), backend.VertexCount()))
	return t
}

// NewRandomTriangulation generates a triangulated random point cloud
// and wraps it. The rng should come from
// PartitionedRNG.ForSubsystem(SubsystemPoints).
func NewRandomTriangulation(vertices, timeSlices int, r geometry.CoordinateRange, rng *rand.Rand) (*Triangulation, error) {
	mesh, err := geometry.GenerateRandomMesh(vertices, r, rng)
	if err != nil {
		return nil, err
	}
	return NewTriangulation(mesh, Metadata{Dimension: 2, TimeSlices: timeSlices}), nil
}

// Geometry exposes read-only access. Queries through it never
// invalidate the cache.
func (t *Triangulation) Geometry() geometry.Query { return t.backend }

// Mutable exposes write access. Acquisition is the invalidation point:
// the modification counter advances and the cached edge count is
// dropped before the mutator is returned, whether or not the caller
// ends up changing anything.
func (t *Triangulation) Mutable() geometry.Mutator {
	t.modificationCount++
	t.modifiedAt = time.Now()
	t.edgeCount.invalidate()
	return t.backend
}

// Metadata returns the fixed shape descriptor.
func (t *Triangulation) Metadata() Metadata { return t.meta }

// CreatedAt is the wrapper's construction time.
func (t *Triangulation) CreatedAt() time.Time { return t.createdAt }

// ModifiedAt is the time of the last mutable access.
func (t *Triangulation) ModifiedAt() time.Time { return t.modifiedAt }

// ModificationCount reports how many times mutable access was taken.
func (t *Triangulation) ModificationCount() uint64 { return t.modificationCount }

func (t *Triangulation) VertexCount() int { return t.backend.VertexCount() }
func (t *Triangulation) FaceCount() int   { return t.backend.FaceCount() }

// EdgeCount returns the derived edge count: O(1) on a fresh cache, a
// full recomputation on a miss. A miss does not repopulate the cache;
// RefreshCache is the only population point, so a read on a hot path
// never hides the recomputation cost behind a stale-looking hit.
func (t *Triangulation) EdgeCount() int {
	if n, ok := t.edgeCount.get(t.modificationCount); ok {
		return n
	}
	n, err := geometry.CountEdges(t.backend)
	if err != nil {
		return 0
	}
	return n
}

// EulerCharacteristic computes V - E + F through the cached counts.
func (t *Triangulation) EulerCharacteristic() int {
	return t.VertexCount() - t.EdgeCount() + t.FaceCount()
}

// RefreshCache recomputes the derived edge count unconditionally and
// stamps it with the current epoch.
func (t *Triangulation) RefreshCache() error {
	n, err := geometry.CountEdges(t.backend)
	if err != nil {
		return err
	}
	t.edgeCount.put(n, t.modificationCount)
	return nil
}

// RecordEvent appends to the history without touching the geometry or
// the cache.
func (t *Triangulation) RecordEvent(kind EventKind, detail string) {
	t.events = append(t.events, Event{Kind: kind, Detail: detail})
}

// Events returns a copy of the history.
func (t *Triangulation) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Validate runs the structural checks: backend validity, the
// empty-circumcircle property when the backend can check it, an Euler
// characteristic consistent with a sphere or a disk, and the causal
// ordering checks.
func (t *Triangulation) Validate() error {
	if !t.backend.IsValid() {
		return &ValidationError{
			Check:  "structure",
			Detail: fmt.Sprintf("%s backend reports an invalid complex", t.backend.Name()),
		}
	}
	if checker, ok := t.backend.(geometry.DelaunayChecker); ok && !checker.IsDelaunay() {
		return &ValidationError{
			Check:  "delaunay",
			Detail: fmt.Sprintf("%s backend reports a violated empty-circumcircle property", t.backend.Name()),
		}
	}
	if chi := t.EulerCharacteristic(); chi != 1 && chi != 2 {
		return &ValidationError{
			Check: "euler-characteristic",
			Detail: fmt.Sprintf("V-E+F = %d-%d+%d = %d, want 1 (disk) or 2 (sphere)",
				t.VertexCount(), t.EdgeCount(), t.FaceCount(), chi),
		}
	}
	if err := t.validateCausality(); err != nil {
		return err
	}
	return t.validateFoliation()
}

// validateCausality will check that every time-like edge connects
// adjacent slices. Vertices do not carry slice labels yet, so there is
// nothing to check; the hook exists so Validate's contract is stable.
func (t *Triangulation) validateCausality() error {
	return nil
}

// validateFoliation will check that every slice is a non-empty cycle.
// Same status as validateCausality.
func (t *Triangulation) validateFoliation() error {
	return nil
}

// LogSummary writes a one-line structured snapshot of the complex.
func (t *Triangulation) LogSummary(log logrus.FieldLogger) {
	log.WithFields(logrus.Fields{
		"backend":       t.backend.Name(),
		"dimension":     t.meta.Dimension,
		"time_slices":   t.meta.TimeSlices,
		"vertices":      t.VertexCount(),
		"edges":         t.EdgeCount(),
		"faces":         t.FaceCount(),
		"euler":         t.EulerCharacteristic(),
		"modifications": t.modificationCount,
	}).Info("triangulation summary")
}
