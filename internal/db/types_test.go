package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus_Toggled(t *testing.T) {
	assert.Equal(t, JobStatusClosed, JobStatusActive.Toggled())
	assert.Equal(t, JobStatusActive, JobStatusClosed.Toggled())

	// A double toggle returns to the original status
	assert.Equal(t, JobStatusActive, JobStatusActive.Toggled().Toggled())
}

func TestStatusBoolConversion(t *testing.T) {
	assert.True(t, statusToBool(JobStatusActive))
	assert.False(t, statusToBool(JobStatusClosed))
	assert.Equal(t, JobStatusActive, statusFromBool(true))
	assert.Equal(t, JobStatusClosed, statusFromBool(false))

	// Unset status stores as active
	assert.True(t, statusToBool(JobStatus("")))
}

func TestCandidate_Analyzed(t *testing.T) {
	candidate := &Candidate{}
	assert.False(t, candidate.Analyzed())

	score := 82
	candidate.MatchScore = &score
	assert.True(t, candidate.Analyzed())
}
