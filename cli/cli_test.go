package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/servicemigration/cli/document"
	"github.com/TykTechnologies/servicemigration/internal/servicetest"
	"github.com/TykTechnologies/servicemigration/version"
)

func setup(t *testing.T) (afero.Fs, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	document.Fs = fs
	document.Out = &out
	t.Cleanup(func() {
		document.Fs = afero.NewOsFs()
		document.Out = os.Stdout
		document.Conf = nil
	})

	for _, key := range []string{"MIGRATE_INPUTFILE", "MIGRATE_OUTPUTFILE", "MIGRATE_LOGLEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	Init([]string{"/etc/svcmigrate.conf"})
	return fs, &out
}

func TestRequire(t *testing.T) {
	_, out := setup(t)

	require.NoError(t, Parse([]string{"require", version.APIVersion}))
	assert.Equal(t, version.APIVersion+" satisfies "+version.APIVersion+"\n", out.String())

	err := Parse([]string{"require", "2.0.0"})
	assert.ErrorIs(t, err, version.ErrIncompatible)

	err = Parse([]string{"require", "one"})
	assert.ErrorIs(t, err, version.ErrMalformed)
}

func TestConfigFile(t *testing.T) {
	fs, out := setup(t)
	servicetest.WriteFixture(t, fs, "/data/in.json")
	require.NoError(t, afero.WriteFile(fs, "/etc/svcmigrate.conf", []byte(`{"input_file": "/data/in.json", "log_level": "warn"}`), 0o644))

	require.NoError(t, Parse([]string{"lint"}))
	assert.Equal(t, "/data/in.json: ok\n", out.String())
	require.NotNil(t, document.Conf)
	assert.Equal(t, "warn", document.Conf.LogLevel)

	require.NoError(t, afero.WriteFile(fs, "/other.conf", []byte(`{"input_file": "/missing.json"}`), 0o644))
	assert.Error(t, Parse([]string{"--conf", "/other.conf", "--log-level", "debug", "lint"}))
	assert.Equal(t, "debug", document.Conf.LogLevel)
}

func TestEnvironment(t *testing.T) {
	fs, out := setup(t)
	servicetest.WriteFixture(t, fs, "/env.json")
	t.Setenv("MIGRATE_INPUTFILE", "/env.json")

	require.NoError(t, Parse([]string{"find", `Zenoss\.core$`}))
	assert.Contains(t, out.String(), "Zenoss.core\t")
}
