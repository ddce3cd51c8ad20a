// Package servicetest provides migration documents for tests.
package servicetest

import (
	_ "embed"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/servicemigration/internal/uuid"
)

// Fixture counts.
const (
	FixtureServices       = 33
	FixtureTenantChildren = 14
	FixtureCollectorSize  = 13
	FixtureTenant         = "Zenoss.core"
)

//go:embed testdata/v1.0.0.json
var fixture []byte

// Fixture returns a copy of the v1.0.0 document: a Zenoss.core tenant with
// 33 services, a hub and a collector both named localhost.
func Fixture() []byte {
	out := make([]byte, len(fixture))
	copy(out, fixture)
	return out
}

// WriteFixture writes the v1.0.0 document to path on fs.
func WriteFixture(tb testing.TB, fs afero.Fs, path string) {
	tb.Helper()
	require.NoError(tb, afero.WriteFile(fs, path, Fixture(), 0o644))
}

// Document builds small migration documents. Service records are plain maps
// so tests can add keys the SDK does not model.
type Document struct {
	Version  string                   `json:"Version"`
	Services []map[string]interface{} `json:"Services"`
	Deploy   []map[string]interface{} `json:"Deploy,omitempty"`

	ids map[string]string
}

// NewDocument creates a document holding only a tenant service.
func NewDocument(tenant string) *Document {
	d := &Document{
		Version: "1.0.0",
		ids:     make(map[string]string),
	}
	d.Add(tenant, "")
	return d
}

// Add appends a service named name below the service named parent and
// returns its generated identifier. An empty parent adds a root, a parent
// that was never added is used as the raw parent identifier.
func (d *Document) Add(name, parent string, fields ...map[string]interface{}) string {
	parentID, ok := d.ids[parent]
	if !ok {
		parentID = parent
	}

	id := uuid.NewServiceID()
	rec := map[string]interface{}{
		"ID":              id,
		"ParentServiceID": parentID,
		"Name":            name,
		"Description":     "",
		"Startup":         "",
		"DesiredState":    1,
		"Endpoints":       nil,
		"Runs":            nil,
		"Volumes":         nil,
		"HealthChecks":    nil,
		"InstanceLimits":  map[string]interface{}{"Min": 1, "Max": 1, "Default": 1},
	}
	for _, f := range fields {
		for k, v := range f {
			rec[k] = v
		}
	}

	d.Services = append(d.Services, rec)
	d.ids[name] = id
	return id
}

// ID returns the identifier of the last service added under name.
func (d *Document) ID(name string) string {
	return d.ids[name]
}

// Bytes marshals the document.
func (d *Document) Bytes(tb testing.TB) []byte {
	tb.Helper()

	data, err := json.Marshal(d)
	require.NoError(tb, err)
	return data
}

// Write marshals the document to path on fs.
func (d *Document) Write(tb testing.TB, fs afero.Fs, path string) {
	tb.Helper()
	require.NoError(tb, afero.WriteFile(fs, path, d.Bytes(tb), 0o644))
}
