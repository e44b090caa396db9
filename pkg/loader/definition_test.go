package loader_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := loader.LoadFile("testdata/unary_append.yaml")
	require.NoError(t, err)
	fromJSON, err := loader.LoadFile("testdata/unary_append.json")
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Equal(t, []domain.Symbol{1, 1, 1}, fromYAML.Input)
	assert.Equal(t, domain.Right, fromYAML.Transitions[1].Move)
}

func TestParseYAML_Overrides(t *testing.T) {
	def, err := loader.ParseYAML([]byte(`
states: [0, 1, 2]
alphabet: [0]
start: 2
final: 0
transitions:
  - {from: 2, on: 0, write: 0, move: L, to: 0}
`))
	require.NoError(t, err)
	require.NotNil(t, def.Start)
	require.NotNil(t, def.Final)
	assert.Equal(t, domain.StateKey(2), *def.Start)
	assert.Equal(t, domain.StateKey(0), *def.Final)
	assert.Nil(t, def.Input)
	assert.Equal(t, domain.Left, def.Transitions[0].Move)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := loader.ParseYAML([]byte("states: [0\n"))
	assert.ErrorContains(t, err, "failed to parse yaml")

	_, err = loader.ParseYAML([]byte("states: [0]\ncolour: blue\n"))
	assert.ErrorContains(t, err, "invalid definition")

	_, err = loader.ParseYAML([]byte("states: [0]\ntransitions:\n  - {from: 0, on: 0, write: 0, move: up, to: 0}\n"))
	assert.ErrorContains(t, err, "invalid move direction")

	_, err = loader.ParseYAML([]byte(""))
	assert.ErrorContains(t, err, "empty definition")

	_, err = loader.ParseYAML([]byte("states: [-1, 0]\nalphabet: [0]\n"))
	assert.ErrorContains(t, err, "negative state -1")

	_, err = loader.ParseJSON([]byte(`{"states": [0], "alphabet": [0, -3]}`))
	assert.ErrorContains(t, err, "negative symbol -3")

	_, err = loader.ParseJSON([]byte(`{"states": [0, 1], "alphabet": [0], "transitions": [{"from": 0, "on": 0, "write": -1, "move": "R", "to": 1}]}`))
	assert.ErrorContains(t, err, "transition #0: negative state or symbol")
}

func TestParseFormat(t *testing.T) {
	f, err := loader.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, loader.FormatYAML, f)

	f, err = loader.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, loader.FormatText, f)

	_, err = loader.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, loader.FormatYAML, loader.DetectFormat("m.yaml"))
	assert.Equal(t, loader.FormatJSON, loader.DetectFormat("dir/m.JSON"))
	assert.Equal(t, loader.FormatText, loader.DetectFormat("m.txt"))
	assert.Equal(t, loader.FormatText, loader.DetectFormat("machine"))
}
