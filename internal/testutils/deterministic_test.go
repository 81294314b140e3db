package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSuffixer_TestMode(t *testing.T) {
	ResetTestCounters()
	suffix := NameSuffixer(true)

	assert.Equal(t, "deploy-00001", suffix("deploy"))
	assert.Equal(t, "deploy-00002", suffix("deploy"))

	ResetTestCounters()
	assert.Equal(t, "logs-00001", suffix("logs"))
}

func TestNameSuffixer_Production(t *testing.T) {
	assert.Nil(t, NameSuffixer(false))
}

func TestFixedSuffixer(t *testing.T) {
	assert.Equal(t, "deploy-x", FixedSuffixer("-x")("deploy"))
}

func TestSequenceSuffixer_IndependentCounters(t *testing.T) {
	a := SequenceSuffixer()
	b := SequenceSuffixer()

	assert.Equal(t, "x-1", a("x"))
	assert.Equal(t, "x-2", a("x"))
	assert.Equal(t, "y-1", b("y"))
}
