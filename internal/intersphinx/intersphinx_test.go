package intersphinx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConstraints(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPins_ParsesExactPins(t *testing.T) {
	path := writeConstraints(t, `
# pinned by pip-compile
attrs==23.1.0
IPython==8.12.1  # downgraded for intersphinx
ipywidgets[all]==8.1.2
matplotlib==3.5.0 ; python_version >= "3.8"
numpy==1.24.4
scipy>=1.7
`)
	pins, err := LoadPins(path)
	require.NoError(t, err)

	version, err := pins.Pin("attrs")
	require.NoError(t, err)
	require.Equal(t, "23.1.0", version)

	// Name matching is case-insensitive.
	version, err = pins.Pin("ipython")
	require.NoError(t, err)
	require.Equal(t, "8.12.1", version)

	// Extras and environment markers are stripped.
	version, err = pins.Pin("ipywidgets")
	require.NoError(t, err)
	require.Equal(t, "8.1.2", version)
	version, err = pins.Pin("matplotlib")
	require.NoError(t, err)
	require.Equal(t, "3.5.0", version)

	// Range requirements are not pins.
	_, err = pins.Pin("scipy")
	require.Error(t, err)
}

func TestPinSet_NameNormalization(t *testing.T) {
	pins := NewPinSet(map[string]string{"mpl-interactions": "0.24.0"})
	version, err := pins.Pin("mpl_interactions")
	require.NoError(t, err)
	require.Equal(t, "0.24.0", version)
}

func TestPinMinor(t *testing.T) {
	pins := NewPinSet(map[string]string{"numpy": "1.24.4", "odd": "7"})

	minor, err := pins.PinMinor("numpy")
	require.NoError(t, err)
	require.Equal(t, "1.24", minor)

	minor, err = pins.PinMinor("odd")
	require.NoError(t, err)
	require.Equal(t, "7", minor)
}

func TestResolve_ExpandsPlaceholders(t *testing.T) {
	pins := NewPinSet(map[string]string{
		"ipython": "8.12.1",
		"numpy":   "1.24.4",
	})
	mapping := map[string]Target{
		"IPython": {URL: "https://ipython.readthedocs.io/en/{version}"},
		"numpy":   {URL: "https://numpy.org/doc/{minor}"},
		"python":  {URL: "https://docs.python.org/3"},
	}

	resolved, err := Resolve(mapping, pins)
	require.NoError(t, err)
	require.Equal(t, "https://ipython.readthedocs.io/en/8.12.1", resolved["IPython"].URL)
	require.Equal(t, "https://numpy.org/doc/1.24", resolved["numpy"].URL)
	require.Equal(t, "https://docs.python.org/3", resolved["python"].URL)
}

func TestResolve_PackageOverride(t *testing.T) {
	pins := NewPinSet(map[string]string{"mpl-interactions": "0.24.0"})
	mapping := map[string]Target{
		"mpl_interactions": {
			URL:     "https://mpl-interactions.readthedocs.io/en/{version}",
			Package: "mpl-interactions",
		},
	}
	resolved, err := Resolve(mapping, pins)
	require.NoError(t, err)
	require.Equal(t, "https://mpl-interactions.readthedocs.io/en/0.24.0", resolved["mpl_interactions"].URL)
}

func TestResolve_UnpinnedPlaceholderFails(t *testing.T) {
	mapping := map[string]Target{
		"attrs": {URL: "https://www.attrs.org/en/{version}"},
	}
	_, err := Resolve(mapping, NewPinSet(nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "attrs")
}

func TestVersionRemapping_Apply(t *testing.T) {
	remap := VersionRemapping{
		"ipywidgets": {
			"8.0.3": "8.0.5",
			"8.0.4": "8.0.5",
			"8.1.1": "8.1.2",
		},
		"matplotlib": {"3.5.1": "3.5.0"},
	}.Normalize()

	require.Equal(t, "8.0.5", remap.Apply("ipywidgets", "8.0.3"))
	require.Equal(t, "8.1.2", remap.Apply("ipywidgets", "8.1.1"))
	require.Equal(t, "8.0.5", remap.Apply("ipywidgets", "8.0.5"), "unmapped versions pass through")
	require.Equal(t, "3.5.0", remap.Apply("Matplotlib", "3.5.1"), "package lookup is case-insensitive")
	require.Equal(t, "1.0.0", remap.Apply("unknown", "1.0.0"))
}

func TestNames_Sorted(t *testing.T) {
	mapping := map[string]Target{
		"sympy": {}, "ampform": {}, "qrules": {},
	}
	require.Equal(t, []string{"ampform", "qrules", "sympy"}, Names(mapping))
}
