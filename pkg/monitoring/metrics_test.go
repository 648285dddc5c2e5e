package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorAccumulates(t *testing.T) {
	c := NewCollector()
	c.RecordIngest(100, 20, 15)
	c.RecordIngest(50, 10, 8)
	c.RecordCorrection(5, 2)

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.IngestRuns)
	assert.Equal(t, int64(150), snap.SentencesTotal)
	assert.Equal(t, int64(30), snap.SentencesAstro)
	assert.Equal(t, int64(23), snap.RulesStored)
	assert.Equal(t, int64(5), snap.CorrectionsAccepted)
	assert.Equal(t, int64(2), snap.CorrectionsRejected)
}

func TestSnapshotZeroValue(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	assert.Zero(t, snap.IngestRuns)
	assert.Zero(t, snap.RulesStored)
}
