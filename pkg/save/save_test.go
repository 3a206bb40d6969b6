package save

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gcode")

	require.NoError(t, WriteFile(path, []string{"G28 ; home", "G1 X10.000 Y0.000 Z0.000 F1500"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "G28 ; home\nG1 X10.000 Y0.000 Z0.000 F1500\n", string(data))
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gcode")

	require.NoError(t, WriteFile(path, []string{"first"}))
	require.NoError(t, WriteFile(path, []string{"second"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestWriteFileConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gcode")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, WriteFile(path, []string{"G28", "G1 X1.000 Y2.000 Z3.000 F1000"}))
		}()
	}
	wg.Wait()

	// Every writer wrote the same content, so the survivor is intact
	// regardless of ordering.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "G28\nG1 X1.000 Y2.000 Z3.000 F1000\n", string(data))
}

func TestWriteFileBadDir(t *testing.T) {
	err := WriteFile(filepath.Join(string(os.PathSeparator), "no", "such", "dir", "out.gcode"), []string{"G28"})
	require.Error(t, err)
}
