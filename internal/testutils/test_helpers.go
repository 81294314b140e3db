package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoard/pkg/hoardtypes"
)

// TestDataGenerator provides common test data
type TestDataGenerator struct{}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{}
}

// Command builds a valid command with the given identity and body.
func (g *TestDataGenerator) Command(namespace, name, body string) hoardtypes.Command {
	return hoardtypes.Command{
		Name:        name,
		Namespace:   namespace,
		Command:     body,
		Description: "",
		Tags:        []string{},
	}
}

// BasicCommands returns a small set of commands across two namespaces.
func (g *TestDataGenerator) BasicCommands() []hoardtypes.Command {
	return []hoardtypes.Command{
		{Name: "deploy", Namespace: "ops", Command: "kubectl apply -f #file!", Description: "Apply a manifest", Tags: []string{"k8s", "ops"}},
		{Name: "logs", Namespace: "ops", Command: "kubectl logs -f #pod!", Description: "Follow pod logs", Tags: []string{"k8s"}},
		{Name: "serve", Namespace: "dev", Command: "python -m http.server #", Description: "Serve the current directory", Tags: []string{"python", "http"}},
	}
}

// TroveYAML returns a trove document holding BasicCommands.
func (g *TestDataGenerator) TroveYAML() string {
	return `version: 1.4.2
commands:
  - name: deploy
    namespace: ops
    command: "kubectl apply -f #file!"
    description: Apply a manifest
    tags: [k8s, ops]
  - name: logs
    namespace: ops
    command: "kubectl logs -f #pod!"
    description: Follow pod logs
    tags: [k8s]
  - name: serve
    namespace: dev
    command: "python -m http.server #"
    description: Serve the current directory
    tags: [python, http]
namespaces: [dev, ops]
`
}

// AssertionHelpers provides common assertion patterns
type AssertionHelpers struct {
	t *testing.T
}

// NewAssertionHelpers creates assertion helpers for a test
func NewAssertionHelpers(t *testing.T) *AssertionHelpers {
	return &AssertionHelpers{t: t}
}

// AssertCommandsEqual compares two command lists field by field, treating
// nil and empty tag lists as equal.
func (h *AssertionHelpers) AssertCommandsEqual(expected, actual []hoardtypes.Command) {
	h.t.Helper()
	if !assert.Len(h.t, actual, len(expected)) {
		return
	}
	for i := range expected {
		assert.True(h.t, expected[i].Equal(actual[i]), "command %d: expected %+v, got %+v", i, expected[i], actual[i])
	}
}

// AssertNames checks the stored command names in order.
func (h *AssertionHelpers) AssertNames(commands []hoardtypes.Command, names ...string) {
	h.t.Helper()
	actual := make([]string, len(commands))
	for i, c := range commands {
		actual[i] = c.Name
	}
	assert.Equal(h.t, names, actual)
}
