package archiver

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitline/transitline/pkg/ctdf"
)

func TestWriteBundle(t *testing.T) {
	incidents := []*ctdf.Incident{
		{PrimaryIdentifier: "TL:INCIDENT:1", LineRef: "TL:LINE:Bus:1", Type: ctdf.IncidentTypeDelay, Status: ctdf.IncidentStatusResolved},
		{PrimaryIdentifier: "TL:INCIDENT:2/a", LineRef: "TL:LINE:Metro:2", Type: ctdf.IncidentTypeAccident, Status: ctdf.IncidentStatusResolved},
	}

	var buffer bytes.Buffer
	require.NoError(t, WriteBundle(&buffer, incidents, time.Now()))

	gzipReader, err := gzip.NewReader(&buffer)
	require.NoError(t, err)
	tarReader := tar.NewReader(gzipReader)

	var names []string
	var lineRefs []string
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		names = append(names, header.Name)

		var incident ctdf.Incident
		require.NoError(t, json.NewDecoder(tarReader).Decode(&incident))
		lineRefs = append(lineRefs, incident.LineRef)
	}

	assert.Equal(t, []string{"TL:INCIDENT:1.json", "TL:INCIDENT:2_a.json"}, names)
	assert.Equal(t, []string{"TL:LINE:Bus:1", "TL:LINE:Metro:2"}, lineRefs)
}
