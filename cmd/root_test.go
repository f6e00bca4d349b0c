package cmd

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DachengChen/ragask/client"
	"github.com/DachengChen/ragask/form"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T, status int) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.RootResponse{Message: "Welcome to the RAG API!"}) //nolint:errcheck
	})
	r.Post("/query", func(w http.ResponseWriter, r *http.Request) {
		var req client.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(client.QueryResponse{Answer: "echo: " + req.Query}) //nolint:errcheck
	})
	r.Post("/ingest", func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(client.IngestResponse{Message: "Document ingested successfully.", Filename: header.Filename, ChunksAdded: 3}) //nolint:errcheck
	})
	r.Post("/scrape", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(client.ScrapeResponse{Message: "Scraping job accepted", TaskID: "abc123"}) //nolint:errcheck
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// run executes the CLI with an isolated home directory and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAsk(t *testing.T) {
	t.Run("prints answer", func(t *testing.T) {
		srv := fakeBackend(t, http.StatusOK)
		out, err := run(t, "--backend", srv.URL, "ask", "what", "is", "rag?")
		require.NoError(t, err)
		assert.Equal(t, "echo: what is rag?\n", out)
	})

	t.Run("http error shows fixed message", func(t *testing.T) {
		srv := fakeBackend(t, http.StatusInternalServerError)
		out, err := run(t, "--backend", srv.URL, "ask", "q")
		require.Error(t, err)
		assert.Equal(t, form.FailureMessage, err.Error())
		assert.Empty(t, out)
	})

	t.Run("unreachable backend shows fixed message", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		_, err = run(t, "--backend", "http://"+addr, "ask", "q")
		require.Error(t, err)
		assert.Equal(t, form.FailureMessage, err.Error())
	})

	t.Run("blank question", func(t *testing.T) {
		srv := fakeBackend(t, http.StatusOK)
		_, err := run(t, "--backend", srv.URL, "ask", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("failure is logged", func(t *testing.T) {
		srv := fakeBackend(t, http.StatusBadGateway)
		logFile := filepath.Join(t.TempDir(), "app.log")
		t.Setenv("RAGASK_LOG_FILE", logFile)

		_, err := run(t, "--backend", srv.URL, "ask", "q")
		require.Error(t, err)

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "backend returned an error status")
		assert.Contains(t, string(data), `"status":502`)
	})
}

func TestPing(t *testing.T) {
	srv := fakeBackend(t, http.StatusOK)
	out, err := run(t, "--backend", srv.URL, "ping")
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the RAG API!\n", out)
}

func TestIngest(t *testing.T) {
	srv := fakeBackend(t, http.StatusOK)
	pdf := filepath.Join(t.TempDir(), "manual.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0600))

	out, err := run(t, "--backend", srv.URL, "ingest", pdf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "manual.pdf, 3 chunks"), out)

	_, err = run(t, "--backend", srv.URL, "ingest", filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestScrape(t *testing.T) {
	srv := fakeBackend(t, http.StatusOK)
	out, err := run(t, "--backend", srv.URL, "scrape", "--url", "https://docs.example.test", "--output", "docs")
	require.NoError(t, err)
	assert.Equal(t, "Scraping job accepted: abc123\n", out)

	_, err = run(t, "--backend", srv.URL, "scrape", "--output", "docs")
	assert.Error(t, err)
}

func TestInvalidBackendFlag(t *testing.T) {
	_, err := run(t, "--backend", "not a url", "ping")
	assert.Error(t, err)
}
