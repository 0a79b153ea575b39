package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailCountsAndSamples(t *testing.T) {
	trail := NewTrail(nil)
	for i := 0; i < SampleLimit+5; i++ {
		trail.Record(Entry{Kind: DuplicateSKU, Row: i + 2, Value: "HBG1"})
	}
	trail.Record(Entry{Kind: MissingField, Field: "Item Weight"})

	assert.Equal(t, SampleLimit+5, trail.Count(DuplicateSKU))
	assert.Len(t, trail.Entries(DuplicateSKU), SampleLimit)
	assert.Equal(t, 1, trail.Count(MissingField))
	assert.Equal(t, SampleLimit+6, trail.Total())
	assert.Equal(t, 0, trail.Count(StockFiltered))
}

func TestTrailIsSafeForConcurrentUse(t *testing.T) {
	trail := NewTrail(nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				trail.Record(Entry{Kind: ReferenceLookupMiss})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, trail.Count(ReferenceLookupMiss))
}

func TestRecordLogsAtExpectedLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.InfoLevel)

	trail := NewTrail(log)
	trail.Record(Entry{Kind: StockFiltered, Message: "filtered out"})
	assert.Empty(t, buf.String())

	trail.Record(Entry{Kind: UnparseableValue, Message: "bad price"})
	assert.Contains(t, buf.String(), "bad price")
	assert.Contains(t, buf.String(), "unparseable_value")
}

func TestEntryString(t *testing.T) {
	e := Entry{Kind: MissingDestinationColumn, Split: "handbags", Field: "Shipping Template", Message: "no column"}
	assert.Equal(t, `[missing_destination_column] split=handbags field="Shipping Template": no column`, e.String())
}

func TestWriteLog(t *testing.T) {
	trail := NewTrail(nil)
	assert.Equal(t, "No audit entries.", trail.Summary())

	trail.Record(Entry{Kind: DuplicateSKU, Row: 7, Value: "HW12"})
	path := filepath.Join(t.TempDir(), "audit.txt")
	require.NoError(t, trail.WriteLog(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "duplicate_sku (showing 1 of 1)")
	assert.Contains(t, string(data), `value="HW12"`)
}
