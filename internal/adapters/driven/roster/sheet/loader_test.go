package sheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/lateowl-labs/driveminder/internal/connectors/google"
	gdrive "github.com/lateowl-labs/driveminder/internal/connectors/google/drive"
	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

func newTestLoader(t *testing.T, handler http.Handler) (*Loader, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	svc, err := drivev3.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(server.URL))
	require.NoError(t, err)

	lister := gdrive.NewLister(svc, google.NewRateLimiter())
	return NewLoader(lister, "Participants"), server.Close
}

func TestLoader_Load(t *testing.T) {
	loader, closeServer := newTestLoader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/export") {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("email,name,active\nann@x.com,Ann,1\nbob@x.com,Bob,0\n"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(&drivev3.FileList{
			Files: []*drivev3.File{{Id: "sheet-1", Name: "Participants"}},
		}))
	}))
	defer closeServer()

	participants, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Inactive rows are filtered during parsing, same as the file loader.
	require.Len(t, participants, 1)
	assert.Equal(t, "ann@x.com", participants[0].Email)
	assert.Equal(t, "Ann", participants[0].Name)
}

func TestLoader_Load_SheetMissing(t *testing.T) {
	loader, closeServer := newTestLoader(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&drivev3.FileList{})
	}))
	defer closeServer()

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrRosterNotFound)
}
