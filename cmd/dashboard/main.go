// Command dashboard serves a read-only HTML view of contact submissions.
// It polls the contact API's GET /contacts endpoint and renders the result;
// it issues no writes and cannot mutate ledger state.
package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-ahsan-bilal/portfolio-api/internal/logging"
	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

type contactsResponse struct {
	Submissions []*model.Submission `json:"submissions"`
	Total       int                 `json:"total"`
}

type dashboardData struct {
	Submissions []*model.Submission
	Total       int
	NewCount    int
	FetchError  string
}

var page = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Contact Form Submissions - Admin Dashboard</title>
<meta http-equiv="refresh" content="30">
<style>
body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
.container { max-width: 1200px; margin: 0 auto; background: white; padding: 20px; border-radius: 8px; }
h1 { color: #333; text-align: center; }
.stats { display: flex; justify-content: space-around; margin-bottom: 30px; padding: 20px; background: #f8f9fa; border-radius: 8px; }
.stat { text-align: center; }
.stat-number { font-size: 2em; font-weight: bold; color: #007bff; }
.stat-label { color: #666; margin-top: 5px; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #007bff; color: white; }
tr:hover { background-color: #f5f5f5; }
.message-cell { max-width: 300px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.timestamp { color: #666; font-size: 0.9em; }
.no-submissions { text-align: center; color: #666; font-style: italic; padding: 40px; }
.error { color: #dc3545; text-align: center; padding: 10px; }
</style>
</head>
<body>
<div class="container">
<h1>Contact Form Submissions</h1>
{{if .FetchError}}<p class="error">{{.FetchError}}</p>{{end}}
<div class="stats">
  <div class="stat"><div class="stat-number">{{.Total}}</div><div class="stat-label">Total Submissions</div></div>
  <div class="stat"><div class="stat-number">{{.NewCount}}</div><div class="stat-label">New Messages</div></div>
</div>
<table>
<thead><tr><th>ID</th><th>Email</th><th>Topic</th><th>Message</th><th>Date</th><th>Status</th></tr></thead>
<tbody>
{{range .Submissions}}
<tr>
  <td><strong>{{.ID}}</strong></td>
  <td><a href="mailto:{{.Email}}">{{.Email}}</a></td>
  <td>{{.Topic}}</td>
  <td class="message-cell" title="{{.Message}}">{{.Message}}</td>
  <td class="timestamp">{{fmtTime .Timestamp}}</td>
  <td>{{.Status}}</td>
</tr>
{{else}}
<tr><td colspan="6" class="no-submissions">No submissions yet. Check back later!</td></tr>
{{end}}
</tbody>
</table>
</div>
</body>
</html>
`))

type dashboard struct {
	apiBaseURL string
	client     *http.Client
}

func (d *dashboard) fetch() (contactsResponse, error) {
	var out contactsResponse
	resp, err := d.client.Get(d.apiBaseURL + "/contacts")
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("contact API returned %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&out)
	return out, err
}

// index renders the submissions table. Fetch failures render an empty
// dashboard with the error shown rather than failing the page.
func (d *dashboard) index(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{}
	contacts, err := d.fetch()
	if err != nil {
		slog.Error("failed to fetch submissions", "error", err)
		data.FetchError = "Could not reach the contact API"
	} else {
		data.Submissions = contacts.Submissions
		data.Total = contacts.Total
		for _, s := range contacts.Submissions {
			if s.Status == model.StatusReceived {
				data.NewCount++
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

// submissions proxies the raw JSON for programmatic consumers.
func (d *dashboard) submissions(w http.ResponseWriter, r *http.Request) {
	resp, err := d.client.Get(d.apiBaseURL + "/contacts")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func main() {
	_ = godotenv.Load()
	logging.Setup()

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:8000"
	}
	port := os.Getenv("DASHBOARD_PORT")
	if port == "" {
		port = "8081"
	}

	d := &dashboard{
		apiBaseURL: apiBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.index)
	mux.HandleFunc("GET /api/submissions", d.submissions)

	slog.Info("dashboard listening", "port", port, "api", apiBaseURL)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logging.Fatal("dashboard server error", "error", err)
	}
}
