package client

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the body of a successful POST /query reply.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// IngestResponse is returned by POST /ingest.
type IngestResponse struct {
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	ChunksAdded int    `json:"chunks_added"`
}

// ScrapeRequest asks the backend to start a background scraping job.
type ScrapeRequest struct {
	TargetURL       string `json:"target_url"`
	ContentSelector string `json:"content_selector"`
	OutputFilename  string `json:"output_filename"`
	Login           bool   `json:"login"`
}

// ScrapeResponse is returned by POST /scrape once the job is accepted.
type ScrapeResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// RootResponse is the welcome payload served at GET /.
type RootResponse struct {
	Message string `json:"message"`
}
