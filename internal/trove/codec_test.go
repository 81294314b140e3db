package trove

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoard/internal/testutils"
	"hoard/internal/version"
	"hoard/pkg/hoardtypes"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := FromCommands(testutils.NewTestDataGenerator().BasicCommands(), WithVersion("1.2.3"))

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original.Version(), decoded.Version())
	testutils.NewAssertionHelpers(t).AssertCommandsEqual(original.Commands(), decoded.Commands())
	assert.Equal(t, original.Namespaces(), decoded.Namespaces())
	assert.Equal(t, original.CachedNamespaces(), decoded.CachedNamespaces())
}

func TestEncode_Schema(t *testing.T) {
	tr := FromCommands([]hoardtypes.Command{
		{Name: "deploy", Namespace: "ops", Command: "echo hi", Description: "say hi", Tags: []string{"a", "b"}},
	}, WithVersion("1.4.2"))

	yamlText, err := tr.ToYAML()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(yamlText, "version: 1.4.2\n"))
	for _, fragment := range []string{
		"commands:\n",
		"- name: deploy\n",
		"namespace: ops\n",
		"command: echo hi\n",
		"description: say hi\n",
		"tags:\n",
		"namespaces:\n",
	} {
		assert.Contains(t, yamlText, fragment)
	}
	assert.Less(t, strings.Index(yamlText, "commands:"), strings.Index(yamlText, "namespaces:"))
}

func TestDecode(t *testing.T) {
	generator := testutils.NewTestDataGenerator()

	t.Run("well formed document", func(t *testing.T) {
		tr, err := Decode([]byte(generator.TroveYAML()))
		require.NoError(t, err)

		assert.Equal(t, "1.4.2", tr.Version())
		testutils.NewAssertionHelpers(t).AssertCommandsEqual(generator.BasicCommands(), tr.Commands())
		assert.Equal(t, []string{"dev", "ops"}, tr.CachedNamespaces())
	})

	t.Run("empty document", func(t *testing.T) {
		tr, err := Decode([]byte("  \n"))
		require.NoError(t, err)
		assert.True(t, tr.IsEmpty())
		assert.Equal(t, version.GetVersion(), tr.Version())
	})

	t.Run("missing version gets the current one", func(t *testing.T) {
		tr, err := Decode([]byte("commands: []\n"))
		require.NoError(t, err)
		assert.Equal(t, version.GetVersion(), tr.Version())
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Decode([]byte("commands: [name: {"))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := Decode([]byte("commands: just a string\n"))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("decoded trove keeps the suffixer option", func(t *testing.T) {
		tr, err := Decode([]byte(generator.TroveYAML()), WithSuffixer(testutils.SequenceSuffixer()))
		require.NoError(t, err)

		_, err = tr.AddCommand(generator.Command("ops", "deploy", "echo other"), false)
		require.NoError(t, err)
		_, ok := tr.Get("deploy-1")
		assert.True(t, ok)
	})
}

func TestLoad_FallsBackToEmptyTrove(t *testing.T) {
	var diagnostics bytes.Buffer

	tr := Load([]byte("version: [unterminated"), &diagnostics)

	assert.True(t, tr.IsEmpty())
	assert.Equal(t, version.GetVersion(), tr.Version())
	assert.Contains(t, diagnostics.String(), "The supplied trove file is invalid!")
}

func TestLoad_NilDiagnostics(t *testing.T) {
	tr := Load([]byte("::::"), nil)
	assert.True(t, tr.IsEmpty())
}

func TestLoad_ValidDocument(t *testing.T) {
	var diagnostics bytes.Buffer

	tr := Load([]byte(testutils.NewTestDataGenerator().TroveYAML()), &diagnostics)

	assert.Equal(t, 3, tr.Len())
	assert.Empty(t, diagnostics.String())
}

func TestEncodeJSON(t *testing.T) {
	commands := testutils.NewTestDataGenerator().BasicCommands()[:1]

	data, err := EncodeJSON(commands)
	require.NoError(t, err)

	var decoded []hoardtypes.Command
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, commands, decoded)

	empty, err := EncodeJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
