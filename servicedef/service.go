package servicedef

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/TykTechnologies/servicemigration/internal/reflect"
)

var errNilRecord = errors.New("service record is null")

// Service wraps one service record with typed, mutable views of its fields.
//
// The originating record is owned by the Service. Serialize starts from a
// copy of it, so keys the SDK does not model survive a load/save cycle.
type Service struct {
	Name           string
	Description    string
	Startup        string
	DesiredState   int
	Endpoints      []Endpoint
	Runs           []Run
	Volumes        []Volume
	HealthChecks   []HealthCheck
	InstanceLimits InstanceLimits

	record *Record
}

// Deserialize builds a Service from a record.
func Deserialize(rec *Record) (*Service, error) {
	if rec == nil {
		return nil, errNilRecord
	}

	svc := &Service{
		Name:         rec.Name,
		Description:  rec.Description,
		Startup:      rec.Startup,
		DesiredState: rec.DesiredState,
		record:       rec,
	}

	var err error
	if svc.Endpoints, err = DeserializeEndpoints(rec.Endpoints); err != nil {
		return nil, fmt.Errorf("service %q: %w", rec.Name, err)
	}
	if svc.Runs, err = DeserializeRuns(rec.Runs); err != nil {
		return nil, fmt.Errorf("service %q: %w", rec.Name, err)
	}
	if svc.Volumes, err = DeserializeVolumes(rec.Volumes); err != nil {
		return nil, fmt.Errorf("service %q: %w", rec.Name, err)
	}
	if svc.HealthChecks, err = DeserializeHealthChecks(rec.HealthChecks); err != nil {
		return nil, fmt.Errorf("service %q: %w", rec.Name, err)
	}
	if svc.InstanceLimits, err = DeserializeInstanceLimits(rec.InstanceLimits); err != nil {
		return nil, fmt.Errorf("service %q: %w", rec.Name, err)
	}

	return svc, nil
}

// Serialize returns a new record holding the current state of svc.
func Serialize(svc *Service) (*Record, error) {
	rec := svc.record.Clone()
	rec.Name = svc.Name
	rec.Description = svc.Description
	rec.Startup = svc.Startup
	rec.DesiredState = svc.DesiredState

	leaves := []struct {
		key   string
		typed interface{}
		dst   *json.RawMessage
		enc   func() (json.RawMessage, error)
	}{
		{KeyEndpoints, svc.Endpoints, &rec.Endpoints, func() (json.RawMessage, error) { return SerializeEndpoints(svc.Endpoints) }},
		{KeyRuns, svc.Runs, &rec.Runs, func() (json.RawMessage, error) { return SerializeRuns(svc.Runs) }},
		{KeyVolumes, svc.Volumes, &rec.Volumes, func() (json.RawMessage, error) { return SerializeVolumes(svc.Volumes) }},
		{KeyHealthChecks, svc.HealthChecks, &rec.HealthChecks, func() (json.RawMessage, error) { return SerializeHealthChecks(svc.HealthChecks) }},
		{KeyInstanceLimits, svc.InstanceLimits, &rec.InstanceLimits, func() (json.RawMessage, error) { return SerializeInstanceLimits(svc.InstanceLimits) }},
	}

	for _, leaf := range leaves {
		// An absent collection that is still empty stays absent.
		if !rec.Has(leaf.key) && reflect.IsEmpty(leaf.typed) {
			continue
		}

		raw, err := leaf.enc()
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", svc.Name, err)
		}
		*leaf.dst = raw
	}

	return rec, nil
}

// ID returns the service identifier, empty for an uncommitted service.
func (s *Service) ID() string {
	return s.record.ID
}

// ParentID returns the identifier of the parent service, empty for the tenant.
func (s *Service) ParentID() string {
	return s.record.ParentServiceID
}

// SetParentID rewrites the parent reference without any validation. Scripts
// should use the migration context's ReparentService instead.
func (s *Service) SetParentID(id string) {
	s.record.ParentServiceID = id
}

// Committed reports whether the service has a stable identifier, i.e. it was
// loaded from a document rather than created with Clone.
func (s *Service) Committed() bool {
	return s.record.ID != ""
}

// Extra returns the raw value of a key the SDK does not model.
func (s *Service) Extra(key string) (json.RawMessage, bool) {
	v, ok := s.record.Extra[key]
	return v, ok
}

// Clone returns a detached, uncommitted copy of the service. The copy has
// no identifier; all other fields are equal to the source at clone time and
// later changes to either are independent.
func (s *Service) Clone() *Service {
	clone := reflect.Clone(s)
	clone.record.ID = ""
	clone.record.forget(KeyID)
	return clone
}

// MarshalJSON implements json.Marshaler by serializing the service.
func (s *Service) MarshalJSON() ([]byte, error) {
	rec, err := Serialize(s)
	if err != nil {
		return nil, err
	}
	return rec.MarshalJSON()
}
