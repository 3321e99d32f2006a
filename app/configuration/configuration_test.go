package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/iotaledger/rwlist/ierrors"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, content, 0o600))

	return filePath
}

func TestFetchFlagset(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.String("A", "321", "test")
	require.NoError(t, testFlagSet.Set("A", "321"))

	config := New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))

	require.EqualValues(t, "321", config.String("A"))
	require.True(t, config.Exists("a"))
}

func TestFetchEnvVars(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.String("B", "322", "test")

	t.Setenv("TEST_B", "321")
	t.Setenv("TEST_C", "321")

	config := New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))
	require.NoError(t, config.LoadEnvironmentVars("TEST"))

	require.EqualValues(t, "321", config.String("B"))

	_, exists := config.All()["c"]
	require.False(t, exists, "expected read config value to not exist")
}

func TestFetchJSONFile(t *testing.T) {
	content, err := json.MarshalIndent(map[string]any{"C": 321, "Nested": map[string]any{"Key": "value"}}, "", "    ")
	require.NoError(t, err)

	config := New()
	require.NoError(t, config.LoadFile(writeTempFile(t, "config.json", content)))

	require.EqualValues(t, 321, config.Int("C"))
	require.Equal(t, "value", config.String("nested.key"))
}

func TestFetchYAMLFile(t *testing.T) {
	content, err := yaml.Marshal(map[string]any{"D": 321, "Nested": map[string]any{"Key": "value"}})
	require.NoError(t, err)

	config := New()
	require.NoError(t, config.LoadFile(writeTempFile(t, "config.yaml", content)))

	require.EqualValues(t, 321, config.Int("D"))
	require.Equal(t, "value", config.String("nested.key"))
}

func TestFetchTOMLFile(t *testing.T) {
	content := []byte("Mode = \"stress\"\n\n[Stress]\nWorkers = 8\nVerifyInterval = \"25ms\"\n")

	config := New()
	require.NoError(t, config.LoadFile(writeTempFile(t, "config.toml", content)))

	require.Equal(t, "stress", config.String("mode"))
	require.Equal(t, 8, config.Int("stress.workers"))
	require.Equal(t, 25*time.Millisecond, config.Duration("stress.verifyInterval"))
}

func TestLoadFileErrors(t *testing.T) {
	config := New()

	err := config.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, ierrors.Is(err, ErrConfigDoesNotExist))

	err = config.LoadFile(writeTempFile(t, "config.ini", []byte("a=b")))
	require.True(t, ierrors.Is(err, ErrUnknownConfigFormat))

	require.Error(t, config.LoadFile(t.TempDir()))
	require.Error(t, config.LoadFile(writeTempFile(t, "broken.json", []byte("{"))))
}

func TestMergeParameters(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.Int("F", 321, "test")
	testFlagSet.Int("G", 1, "test")
	require.NoError(t, testFlagSet.Parse([]string{"--G=2"}))

	t.Setenv("TEST_F", "322")

	content, err := json.Marshal(map[string]any{"E": 321, "G": 3})
	require.NoError(t, err)

	config := New()
	require.NoError(t, config.LoadFile(writeTempFile(t, "config.json", content)))

	// defaults of the flags are only used for keys that do not exist yet
	require.NoError(t, config.LoadFlagSet(testFlagSet))
	require.NoError(t, config.LoadEnvironmentVars("TEST"))

	require.EqualValues(t, 321, config.Int("E"))
	require.EqualValues(t, 322, config.Int("F"))
	require.EqualValues(t, 2, config.Int("G"))
}

func TestSetDefault(t *testing.T) {
	config := New()

	require.NoError(t, config.Set("Stress.Workers", 4))
	require.NoError(t, config.SetDefault("stress.workers", 8))
	require.NoError(t, config.SetDefault("stress.operations", 100))

	require.Equal(t, 4, config.Int("stress.workers"))
	require.Equal(t, 100, config.Int("stress.operations"))
	require.EqualValues(t, 100, config.Get("stress.operations"))
	require.Same(t, config.config, config.Koanf())
}

func TestNewUnsortedFlagSet(t *testing.T) {
	testFlagSet := NewUnsortedFlagSet("test", flag.ContinueOnError)
	testFlagSet.Bool("b", false, "")
	testFlagSet.Bool("a", false, "")

	var names []string
	testFlagSet.VisitAll(func(f *flag.Flag) { names = append(names, f.Name) })

	require.Equal(t, []string{"b", "a"}, names)
}
