package insertrecords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	directory := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(directory, "vehicles.yaml"), []byte(`Collection: vehicles
Match:
  primaryidentifier: TL:VEHICLE:1
Data:
  registration: ABC-123
  status: InService
---
Collection: vehicles
Match:
  primaryidentifier: TL:VEHICLE:2
Data:
  registration: XYZ-789
`), 0o644))

	definitions, err := Load(directory)
	require.NoError(t, err)
	require.Len(t, definitions, 2)

	assert.Equal(t, "TL:VEHICLE:1", definitions[0].Match["primaryidentifier"])
	assert.Equal(t, "ABC-123", definitions[0].Data["registration"])
}

func TestLoadRejectsUnknownCollection(t *testing.T) {
	directory := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(directory, "users.yaml"), []byte(`Collection: user_push_notification_target
Match:
  userid: someone
Data:
  pushnotificationtoken: stolen
`), 0o644))

	_, err := Load(directory)
	assert.Error(t, err)
}

func TestLoadValidatesLines(t *testing.T) {
	directory := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(directory, "lines.yaml"), []byte(`Collection: lines
Match:
  primaryidentifier: TL:LINE:Bus:7
Data:
  primaryname: "7"
  transporttype: Bus
  status: active
  stops:
    - primaryname: Plaza
      sequence: 1
      location:
        type: Point
        coordinates: [2.17, 41.38]
    - primaryname: Puerto
      sequence: 2
      location:
        type: Point
        coordinates: [2.18, 41.37]
`), 0o644))

	definitions, err := Load(directory)
	require.NoError(t, err)
	require.Len(t, definitions, 1)
}

func TestLoadRejectsLineStopWithoutPoint(t *testing.T) {
	directory := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(directory, "lines.yaml"), []byte(`Collection: lines
Match:
  primaryidentifier: TL:LINE:Bus:7
Data:
  primaryname: "7"
  transporttype: Bus
  status: active
  stops:
    - primaryname: Plaza
      sequence: 1
      location:
        type: Point
        coordinates: []
`), 0o644))

	_, err := Load(directory)
	assert.Error(t, err)
}
