package migration

import (
	"bytes"
	"testing"

	"github.com/nsf/jsondiff"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/TykTechnologies/servicemigration/config"
	"github.com/TykTechnologies/servicemigration/internal/errors"
	"github.com/TykTechnologies/servicemigration/internal/servicetest"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

const (
	inFile  = "/migrate/v1.0.0.json"
	outFile = "/migrate/out.json"
)

func newFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	servicetest.WriteFixture(t, fs, inFile)
	return fs
}

func loadFixture(t *testing.T, opts ...Option) (*ServiceContext, afero.Fs) {
	t.Helper()

	fs := newFs(t)
	ctx, err := Load(At(inFile), append([]Option{WithFs(fs), WithConfig(&config.Config{})}, opts...)...)
	require.NoError(t, err)
	return ctx, fs
}

func reload(t *testing.T, fs afero.Fs) *ServiceContext {
	t.Helper()

	ctx, err := Load(At(outFile), WithFs(fs), WithConfig(&config.Config{}))
	require.NoError(t, err)
	return ctx
}

func byName(t *testing.T, ctx *ServiceContext, name string) *servicedef.Service {
	t.Helper()

	for _, svc := range ctx.Services {
		if svc.Name == name {
			return svc
		}
	}
	require.Failf(t, "service not found", "no service named %q", name)
	return nil
}

func TestLoad(t *testing.T) {
	ctx, _ := loadFixture(t)

	assert.Len(t, ctx.Services, servicetest.FixtureServices)
	assert.Equal(t, "1.0.0", ctx.Version)
	assert.Empty(t, ctx.Deployments())
	assert.Equal(t, servicetest.FixtureTenant, ctx.Tenant().Name)
	assert.Equal(t, "Zenoss.core", ctx.Services[0].Name)
	assert.Equal(t, "writer", ctx.Services[len(ctx.Services)-1].Name)
	assert.NoError(t, ctx.Validate())
}

func TestCommit_RemoveService(t *testing.T) {
	ctx, fs := loadFixture(t)

	ctx.Services = ctx.Services[:len(ctx.Services)-1]
	assert.Len(t, ctx.Services, 32)
	require.NoError(t, ctx.Commit(At(outFile)))

	ctx = reload(t, fs)
	assert.Len(t, ctx.Services, 32)
}

func TestCommit_Version(t *testing.T) {
	ctx, fs := loadFixture(t)

	ctx.Version = "foo.bar.baz"
	require.NoError(t, ctx.Commit(At(outFile)))

	ctx = reload(t, fs)
	assert.Equal(t, "foo.bar.baz", ctx.Version)
}

func TestCommit_RoundTrip(t *testing.T) {
	ctx, _ := loadFixture(t)

	var out bytes.Buffer
	require.NoError(t, ctx.CommitTo(&out))

	opts := jsondiff.DefaultConsoleOptions()
	diff, report := jsondiff.Compare(servicetest.Fixture(), out.Bytes(), &opts)
	assert.Equal(t, jsondiff.FullMatch, diff, report)
}

func TestCommit_Overwrites(t *testing.T) {
	ctx, fs := loadFixture(t)
	require.NoError(t, afero.WriteFile(fs, outFile, bytes.Repeat([]byte(" "), 1<<20), 0o644))

	ctx.Services = ctx.Services[:1]
	ctx.Services[0].Description = "only the tenant"
	require.NoError(t, ctx.Commit(At(outFile)))

	data, err := afero.ReadFile(fs, outFile)
	require.NoError(t, err)
	assert.Less(t, len(data), 1<<20)

	doc := gjson.ParseBytes(data)
	assert.Len(t, doc.Get("Services").Array(), 1)
	assert.Equal(t, "only the tenant", doc.Get("Services.0.Description").String())
	assert.True(t, doc.Get("Deploy").IsArray())
	assert.Equal(t, "Zenoss.core", doc.Get("Services.0.DeploymentID").String())
}

func TestNew_Environment(t *testing.T) {
	fs := newFs(t)
	t.Setenv("MIGRATE_INPUTFILE", inFile)
	t.Setenv("MIGRATE_OUTPUTFILE", outFile)

	ctx, err := New(WithFs(fs))
	require.NoError(t, err)
	assert.Len(t, ctx.Services, 33)

	ctx.Services = ctx.Services[:len(ctx.Services)-1]
	require.NoError(t, ctx.Commit(Location{}))

	t.Setenv("MIGRATE_INPUTFILE", outFile)
	ctx, err = New(WithFs(fs))
	require.NoError(t, err)
	assert.Len(t, ctx.Services, 32)
}

func TestNew_NoInput(t *testing.T) {
	fs := newFs(t)
	t.Setenv("MIGRATE_INPUTFILE", "")
	t.Setenv("MIGRATE_OUTPUTFILE", "")

	_, err := New(WithFs(fs))
	assert.ErrorIs(t, err, ErrNoInput)
	assert.EqualError(t, err, "can't find migration input data")
	assert.True(t, IsConfigurationError(err))

	ctx, err := Load(At(inFile), WithFs(fs))
	require.NoError(t, err)

	err = ctx.Commit(Location{})
	assert.ErrorIs(t, err, ErrNoOutput)
	assert.EqualError(t, err, "can't find migration output location")
	assert.True(t, IsConfigurationError(err))
}

func TestLoad_ExplicitConfig(t *testing.T) {
	fs := newFs(t)
	conf := &config.Config{InputFile: inFile, OutputFile: outFile}

	ctx, err := Load(Location{}, WithFs(fs), WithConfig(conf))
	require.NoError(t, err)
	require.NoError(t, ctx.Commit(Location{}))

	exists, err := afero.Exists(fs, outFile)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(At("/nope.json"), WithFs(afero.NewMemMapFs()), WithConfig(&config.Config{}))
	assert.Error(t, err)
	assert.False(t, IsConfigurationError(err))
}

func TestLoad_InvalidDocuments(t *testing.T) {
	multipleTenants := servicetest.NewDocument("tenant")
	multipleTenants.Add("other", "")

	missingParent := servicetest.NewDocument("tenant")
	missingParent.Add("orphan", "nobody")

	tests := []struct {
		name   string
		data   []byte
		schema bool
		err    error
	}{
		{"not json", []byte(`{"Services": [`), true, ErrInvalidDocument},
		{"schema mismatch", []byte(`{"Services": [{"ID": "a"}]}`), true, ErrInvalidDocument},
		{"no tenant", []byte(`{"Services": []}`), true, servicedef.ErrNoTenant},
		{"multiple tenants", multipleTenants.Bytes(t), true, servicedef.ErrMultipleTenants},
		{"missing parent", missingParent.Bytes(t), false, servicedef.ErrMissingParent},
		{"bad leaf", []byte(`{"Services": [{"ID": "a", "Name": "t", "Runs": {"x": 1}}]}`), false, ErrInvalidDocument},
		{"null record", []byte(`{"Services": [null]}`), false, ErrInvalidDocument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFrom(bytes.NewReader(tc.data), WithConfig(&config.Config{ValidateSchema: tc.schema}))
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, errors.IsStructural(err))
		})
	}
}

func TestLoad_SchemaValidationOption(t *testing.T) {
	data := []byte(`{"Services": [{"ID": "a"}]}`)

	_, err := LoadFrom(bytes.NewReader(data), WithConfig(&config.Config{}), WithSchemaValidation(true))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	ctx, err := LoadFrom(bytes.NewReader(data), WithConfig(&config.Config{ValidateSchema: true}), WithSchemaValidation(false))
	require.NoError(t, err)
	assert.Equal(t, "", ctx.Tenant().Name)
}

func TestCommit_ValidateOnCommit(t *testing.T) {
	ctx, fs := loadFixture(t, WithValidateOnCommit(true))

	zenhub := ctx.FindService("Zenoss.core/localhost/zenhub")
	hub := ctx.FindService("Zenoss.core/localhost")
	require.NotNil(t, zenhub)
	require.NotNil(t, hub)

	// bypass ReparentService to build a cycle
	hub.SetParentID(zenhub.ID())

	err := ctx.Commit(At(outFile))
	assert.ErrorIs(t, err, ErrCycle)

	exists, err := afero.Exists(fs, outFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCommit_NilService(t *testing.T) {
	t.Run("validate on commit", func(t *testing.T) {
		ctx, _ := loadFixture(t, WithValidateOnCommit(true))
		ctx.Services = append(ctx.Services, nil)

		var buf bytes.Buffer
		err := ctx.CommitTo(&buf)
		assert.ErrorIs(t, err, ErrNilService)
		assert.True(t, errors.IsStructural(err))
		assert.Zero(t, buf.Len())
	})

	t.Run("without validation", func(t *testing.T) {
		ctx, _ := loadFixture(t)
		ctx.Services = append(ctx.Services, nil)

		var buf bytes.Buffer
		assert.ErrorIs(t, ctx.CommitTo(&buf), ErrNilService)
		assert.ErrorIs(t, ctx.Validate(), ErrNilService)
	})
}
