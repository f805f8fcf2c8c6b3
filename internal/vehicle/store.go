package vehicle

import (
	"context"
	"sync"
	"time"

	"example.com/backstage/services/console/internal/cache"
	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/store"
	"example.com/backstage/services/console/internal/tracing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// logCap bounds the rolling diagnostic log.
const logCap = 50

const snapshotTTL = 24 * time.Hour

// LogEntry is one recorded action outcome in the diagnostic log.
type LogEntry struct {
	Time      time.Time `json:"time"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	FailSoft  bool      `json:"fail_soft,omitempty"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
}

// Snapshot is the serializable view of the vehicle store.
type Snapshot struct {
	Vehicle        *Vehicle        `json:"vehicle,omitempty"`
	Basic          *BasicInfo      `json:"basic,omitempty"`
	Documents      []Document      `json:"documents"`
	Insurance      *Insurance      `json:"insurance,omitempty"`
	ServiceHistory []ServiceRecord `json:"service_history"`
	Info           *Info           `json:"info,omitempty"`
}

// Store is the vehicle-domain state store. It differs from the other
// stores in one way: a not-found answer from the backend is translated
// into a successful empty result, because an unregistered vehicle is a
// valid steady state for a delivery person. Every action outcome is also
// recorded in a rolling diagnostic log for the ops view, independent of
// the error slot.
type Store struct {
	api      API
	track    *store.Tracker
	tracer   tracing.Tracer
	snaps    *cache.SnapshotCache
	personID int64

	mu             sync.RWMutex
	vehicle        *Vehicle
	basic          *BasicInfo
	documents      []Document
	insurance      *Insurance
	serviceHistory []ServiceRecord
	info           *Info
	diag           []LogEntry
}

// NewStore creates the vehicle store. personID keys the snapshot cache
// entry; the backend scopes the vehicle endpoints by the auth token, so
// the ID is only used for cache isolation.
func NewStore(api API, m *metrics.Metrics, tracer tracing.Tracer, snaps *cache.SnapshotCache, personID int64) *Store {
	return &Store{
		api:      api,
		track:    store.NewTracker("vehicle", m),
		tracer:   tracer,
		snaps:    snaps,
		personID: personID,
	}
}

// Loading reports whether any vehicle action is in flight.
func (s *Store) Loading() bool { return s.track.Loading() }

// Err returns the last action failure message.
func (s *Store) Err() string { return s.track.Err() }

// ClearError clears the last-error slot.
func (s *Store) ClearError() { s.track.ClearError() }

// Ops returns per-action in-flight state for the ops API.
func (s *Store) Ops() map[string]store.OpState { return s.track.Ops() }

func (s *Store) begin(ctx context.Context, name string) (context.Context, func()) {
	if s.tracer == nil {
		return ctx, func() {}
	}
	txn := s.tracer.StartTransaction("vehicle." + name)
	return tracing.ContextWithTransaction(ctx, txn), func() { s.tracer.EndTransaction(txn) }
}

// failSoft reports whether a failed envelope should read as an empty
// success. Status-based not-found wins; message matching is the fallback
// for backends that answer 200 with an error body.
func failSoft(kind envelope.ErrorKind, msg string) bool {
	return kind == envelope.ErrNotFound || envelope.NotFoundMessage(msg)
}

// record appends to the diagnostic log, newest first, capped.
func (s *Store) record(action string, success, soft bool, msg string) {
	entry := LogEntry{
		Time:      time.Now(),
		Action:    action,
		Success:   success,
		FailSoft:  soft,
		Message:   msg,
		RequestID: uuid.New().String(),
	}

	s.mu.Lock()
	s.diag = append([]LogEntry{entry}, s.diag...)
	if len(s.diag) > logCap {
		s.diag = s.diag[:logCap]
	}
	s.mu.Unlock()
}

// run executes one fail-soft action: reconcile stores the payload, reset
// clears the slot to its empty default when the backend has nothing.
func (s *Store) run(ctx context.Context, name string, call func(context.Context) (bool, envelope.ErrorKind, string, func(), func())) store.Result {
	ctx, end := s.begin(ctx, name)
	defer end()

	return s.track.Do(name, func() (bool, string) {
		success, kind, msg, reconcile, reset := call(ctx)

		if success {
			s.mu.Lock()
			reconcile()
			s.mu.Unlock()
			s.record(name, true, false, msg)
			s.persistSnapshot(ctx)
			return true, msg
		}

		if failSoft(kind, msg) {
			s.mu.Lock()
			reset()
			s.mu.Unlock()
			s.record(name, true, true, msg)
			s.persistSnapshot(ctx)
			return true, "no vehicle data on record"
		}

		s.record(name, false, false, msg)
		return false, msg
	})
}

// FetchVehicle loads the registered vehicle record.
func (s *Store) FetchVehicle(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_vehicle", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetVehicle(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.vehicle = env.Data },
			func() { s.vehicle = nil }
	})
}

// FetchBasic loads the compact vehicle header.
func (s *Store) FetchBasic(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_basic", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetBasic(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.basic = env.Data },
			func() { s.basic = nil }
	})
}

// FetchDocuments loads the vehicle's documents.
func (s *Store) FetchDocuments(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_documents", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetDocuments(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.documents = env.Data },
			func() { s.documents = []Document{} }
	})
}

// FetchInsurance loads the vehicle's insurance record.
func (s *Store) FetchInsurance(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_insurance", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetInsurance(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.insurance = env.Data },
			func() { s.insurance = nil }
	})
}

// FetchServiceHistory loads the vehicle's service history.
func (s *Store) FetchServiceHistory(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_service_history", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetServiceHistory(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.serviceHistory = env.Data },
			func() { s.serviceHistory = []ServiceRecord{} }
	})
}

// FetchInfo loads the composite vehicle view.
func (s *Store) FetchInfo(ctx context.Context) store.Result {
	return s.run(ctx, "fetch_info", func(ctx context.Context) (bool, envelope.ErrorKind, string, func(), func()) {
		env := s.api.GetInfo(ctx)
		return env.Success, env.Kind, env.Message,
			func() { s.info = env.Data },
			func() { s.info = nil }
	})
}

// LoadProfile fetches the whole vehicle panel in one concurrent sweep.
func (s *Store) LoadProfile(ctx context.Context) store.Result {
	return store.RunAll(ctx,
		s.FetchVehicle,
		s.FetchBasic,
		s.FetchDocuments,
		s.FetchInsurance,
		s.FetchServiceHistory,
		s.FetchInfo,
	)
}

// Hydrate restores the vehicle slots from the snapshot cache, if a
// snapshot is there for this person.
func (s *Store) Hydrate(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}

	var snap Snapshot
	if err := s.snaps.Get(ctx, cache.VehicleSnapshotKey(s.personID), &snap); err != nil {
		log.Debug().Err(err).Msg("No vehicle snapshot to hydrate from")
		return
	}

	s.mu.Lock()
	s.vehicle = snap.Vehicle
	s.basic = snap.Basic
	s.documents = snap.Documents
	s.insurance = snap.Insurance
	s.serviceHistory = snap.ServiceHistory
	s.info = snap.Info
	s.mu.Unlock()

	log.Info().
		Int64("person_id", s.personID).
		Bool("registered", snap.Vehicle != nil).
		Msg("Vehicle store hydrated from snapshot")
}

func (s *Store) persistSnapshot(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}
	if err := s.snaps.Set(ctx, cache.VehicleSnapshotKey(s.personID), s.Snapshot(), snapshotTTL); err != nil {
		log.Debug().Err(err).Msg("Failed to persist vehicle snapshot")
	}
}

// Snapshot returns a copy of the store's current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Vehicle:        s.vehicle,
		Basic:          s.basic,
		Documents:      append([]Document(nil), s.documents...),
		Insurance:      s.insurance,
		ServiceHistory: append([]ServiceRecord(nil), s.serviceHistory...),
		Info:           s.info,
	}
}

// Vehicle returns the registered vehicle, or nil when none is on record.
func (s *Store) Vehicle() *Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicle
}

// Basic returns the compact vehicle header.
func (s *Store) Basic() *BasicInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basic
}

// Documents returns a copy of the document list.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Document(nil), s.documents...)
}

// Insurance returns the insurance record.
func (s *Store) Insurance() *Insurance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.insurance
}

// ServiceHistory returns a copy of the service history.
func (s *Store) ServiceHistory() []ServiceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ServiceRecord(nil), s.serviceHistory...)
}

// Info returns the composite vehicle view.
func (s *Store) Info() *Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Log returns a copy of the diagnostic log, newest first.
func (s *Store) Log() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LogEntry(nil), s.diag...)
}
