package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/MrSnakeDoc/listsite/internal/detector"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/MrSnakeDoc/listsite/internal/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		st       pipeline.Status
		contains []string
	}{
		{
			name: "first publish",
			st: pipeline.Status{
				Result: updater.Result{
					Decision:       detector.FetchAndCompare,
					SourceModified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				},
				Source:      "dropbox:/foolist.json",
				Destination: "s3://foo.list-generator/foolist.json",
			},
			contains: []string{"dropbox:/foolist.json", "s3://foo.list-generator/foolist.json", "—", "may be stale"},
		},
		{
			name: "up to date",
			st: pipeline.Status{
				Result: updater.Result{
					Decision:            detector.Skip,
					SourceProviderHash:  "dbx-9f8e",
					DestinationHash:     "0123abcd",
					SourceModified:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
					DestinationModified: time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
				},
				Source:      "dropbox:/foolist.json",
				Destination: "s3://foo.list-generator/foolist.json",
			},
			contains: []string{"dbx-9f8e", "0123abcd", "is up to date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.ConsoleOptions(false, &buf))

			require.NoError(t, Render(log, tt.st))
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}
