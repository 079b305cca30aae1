package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRates(t *testing.T) {
	store := NewStore()

	assert.InDelta(t, 8.47, store.InstanceMonthlyRate("t2.micro"), 0.001)
	assert.InDelta(t, 29.88, store.InstanceMonthlyRate("t3.medium"), 0.001)
	assert.InDelta(t, DefaultInstanceMonthlyRate, store.InstanceMonthlyRate("z9.mega"), 0.001)

	assert.InDelta(t, 12.41, store.DBInstanceMonthlyRate("db.t3.micro"), 0.001)
	assert.InDelta(t, DefaultInstanceMonthlyRate, store.DBInstanceMonthlyRate("db.z9.mega"), 0.001)

	assert.InDelta(t, 0.10, store.VolumeGBMonthRate("gp2"), 0.0001)
	assert.InDelta(t, 0.08, store.VolumeGBMonthRate("gp3"), 0.0001)
	assert.InDelta(t, DefaultVolumeGBMonthRate, store.VolumeGBMonthRate("magnetic"), 0.0001)

	assert.InDelta(t, 0.023, store.StorageGBMonthRate("STANDARD"), 0.0001)
	assert.InDelta(t, 0.0125, store.StorageGBMonthRate("STANDARD_IA"), 0.0001)
	assert.InDelta(t, DefaultStorageGBMonthRate, store.StorageGBMonthRate("UNKNOWN_CLASS"), 0.0001)
}

func TestNewStoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	contents := `instances:
  t2.micro: 9.99
volumes:
  gp3: 0.07
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	store, err := NewStoreFromFile(path)
	require.NoError(t, err)

	// Overridden entries replace defaults, the rest of the table survives.
	assert.InDelta(t, 9.99, store.InstanceMonthlyRate("t2.micro"), 0.001)
	assert.InDelta(t, 16.94, store.InstanceMonthlyRate("t2.small"), 0.001)
	assert.InDelta(t, 0.07, store.VolumeGBMonthRate("gp3"), 0.0001)
	assert.InDelta(t, 0.10, store.VolumeGBMonthRate("gp2"), 0.0001)
}

func TestNewStoreFromFileMissing(t *testing.T) {
	_, err := NewStoreFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
