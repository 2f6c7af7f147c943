package archiver

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

// Archiver moves resolved incidents out of the database into a tar.gz bundle
type Archiver struct {
	OutputDirectory string
	MaxAge          time.Duration
	CloudUpload     bool
	CloudBucketName string
}

func (a *Archiver) Perform(ctx context.Context) error {
	log.Info().Interface("archiver", a).Msg("Running Archive process")

	currentTime := time.Now()
	cutOffTime := currentTime.Add(-a.MaxAge)
	log.Info().Msgf("Archiving resolved incidents older than %s", cutOffTime)

	incidentsCollection := database.GetCollection("incidents")
	searchFilter := bson.M{
		"status":               ctdf.IncidentStatusResolved,
		"modificationdatetime": bson.M{"$lt": cutOffTime},
	}

	cursor, err := incidentsCollection.Find(ctx, searchFilter)
	if err != nil {
		return err
	}

	var incidents []*ctdf.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		return err
	}

	if len(incidents) == 0 {
		log.Info().Msg("Nothing to archive")
		return nil
	}

	bundleFilename := fmt.Sprintf("incidents-%s.tar.gz", currentTime.Format("2006-01-02T150405"))

	bundleFile, err := os.Create(path.Join(a.OutputDirectory, bundleFilename))
	if err != nil {
		return err
	}

	if err := WriteBundle(bundleFile, incidents, currentTime); err != nil {
		bundleFile.Close()
		return err
	}
	if err := bundleFile.Close(); err != nil {
		return err
	}

	log.Info().Int("recordCount", len(incidents)).Msg("Archive document generation complete")

	if a.CloudUpload {
		if err := a.uploadToStorage(ctx, bundleFilename); err != nil {
			return err
		}
	}

	identifiers := make([]string, 0, len(incidents))
	for _, incident := range incidents {
		identifiers = append(identifiers, incident.PrimaryIdentifier)
	}

	_, err = incidentsCollection.DeleteMany(ctx, bson.M{"primaryidentifier": bson.M{"$in": identifiers}})

	return err
}

// WriteBundle writes one JSON file per incident into a gzipped tar stream
func WriteBundle(writer io.Writer, incidents []*ctdf.Incident, modTime time.Time) error {
	gzipWriter := gzip.NewWriter(writer)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, incident := range incidents {
		incidentJSON, err := json.Marshal(incident)
		if err != nil {
			return fmt.Errorf("converting incident to json: %w", err)
		}

		filename := strings.ReplaceAll(fmt.Sprintf("%s.json", incident.PrimaryIdentifier), "/", "_")

		err = tarWriter.WriteHeader(&tar.Header{
			Name:    filename,
			Size:    int64(len(incidentJSON)),
			Mode:    0o644,
			ModTime: modTime,
		})
		if err != nil {
			return fmt.Errorf("writing tar header: %w", err)
		}

		if _, err := tarWriter.Write(incidentJSON); err != nil {
			return err
		}
	}

	if err := tarWriter.Close(); err != nil {
		return err
	}

	return gzipWriter.Close()
}

func (a *Archiver) uploadToStorage(ctx context.Context, filename string) error {
	fullBundlePath := path.Join(a.OutputDirectory, filename)

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("could not create GCP storage client: %w", err)
	}
	defer client.Close()

	object := client.Bucket(a.CloudBucketName).Object(filename)

	reader, err := os.Open(fullBundlePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer := object.NewWriter(ctx)

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return err
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write file to GCP: %w", err)
	}

	log.Info().Msgf("Written file %s to bucket %s", object.ObjectName(), object.BucketName())

	return nil
}
