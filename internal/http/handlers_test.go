package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mealgacha/internal/catalog"
	"mealgacha/internal/core"
	"mealgacha/internal/drawcache"
	"mealgacha/internal/services"
	"mealgacha/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	base := t.TempDir()

	repo, err := storage.NewSQLiteRepository(filepath.Join(base, "records.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	tickets, err := drawcache.NewStore(filepath.Join(base, "draw_cache"))
	if err != nil {
		t.Fatalf("open draw cache: %v", err)
	}

	svc := services.NewRecordService(repo)
	t.Cleanup(func() { svc.Close() })

	return NewServer(":0", svc, catalog.NewEngine(cat), tickets)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodGet, "/healthz", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d", resp.Code)
	}
}

func TestStatusCountsRequests(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodGet, "/healthz", "")
	resp := do(t, s, http.MethodGet, "/api/status", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Status        string `json:"status"`
		RequestID     string `json:"request_id"`
		TotalRequests int64  `json:"total_requests"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("status %q", body.Status)
	}
	if body.RequestID == "" {
		t.Fatal("expected a request id")
	}
	// The health probe above plus this request.
	if body.TotalRequests != 2 {
		t.Fatalf("total_requests = %d, want 2", body.TotalRequests)
	}
}

func TestReady(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodGet, "/readyz", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDrawFlow(t *testing.T) {
	s := newTestServer(t)

	resp := do(t, s, http.MethodPost, "/api/draw", `{"mode":"indulgent"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("draw status %d: %s", resp.Code, resp.Body.String())
	}

	var dr drawResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &dr); err != nil {
		t.Fatalf("decode draw response: %v", err)
	}
	if dr.Ticket == "" || dr.Result.Mode != core.ModeIndulgent {
		t.Fatalf("bad draw response: %+v", dr)
	}

	// Result survives the page transition.
	resp = do(t, s, http.MethodGet, "/api/draw/"+dr.Ticket, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get draw status %d", resp.Code)
	}

	// Explicit cleanup, after which the ticket is gone.
	resp = do(t, s, http.MethodDelete, "/api/draw/"+dr.Ticket, "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete draw status %d", resp.Code)
	}
	resp = do(t, s, http.MethodGet, "/api/draw/"+dr.Ticket, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("after delete, status %d", resp.Code)
	}
}

func TestDrawTicketTraversalIsRejected(t *testing.T) {
	base := t.TempDir()

	repo, err := storage.NewSQLiteRepository(filepath.Join(base, "records.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	tickets, err := drawcache.NewStore(filepath.Join(base, "draw_cache"))
	if err != nil {
		t.Fatalf("open draw cache: %v", err)
	}
	svc := services.NewRecordService(repo)
	t.Cleanup(func() { svc.Close() })
	s := NewServer(":0", svc, catalog.NewEngine(cat), tickets)

	// A sibling file outside the cache dir that a traversal ticket targets.
	outside := filepath.Join(base, "secret.json")
	if err := os.WriteFile(outside, []byte(`{"mode":"indulgent"}`), 0644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	resp := do(t, s, http.MethodGet, "/api/draw/..%2Fsecret", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get traversal ticket status %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(t, s, http.MethodDelete, "/api/draw/..%2Fsecret", "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete traversal ticket status %d", resp.Code)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the cache dir was touched: %v", err)
	}
}

func TestDrawRejectsUnknownMode(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodPost, "/api/draw", `{"mode":"cheat-day"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
}

func TestRecordCRUD(t *testing.T) {
	s := newTestServer(t)

	resp := do(t, s, http.MethodPost, "/api/records",
		`{"dish":"pork belly ramen","amount":38.9,"calories":980,"mode":"indulgent","category":"noodles"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.Code, resp.Body.String())
	}

	var rec core.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ID == 0 || rec.Amount.Tenths != 389 || rec.Interval == "" {
		t.Fatalf("bad created record: %+v", rec)
	}

	idPath := "/api/records/" + strconv.FormatInt(rec.ID, 10)

	resp = do(t, s, http.MethodGet, idPath, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get status %d", resp.Code)
	}

	resp = do(t, s, http.MethodPut, idPath,
		`{"dish":"katsu curry","amount":"33.5","calories":1010,"mode":"indulgent","category":"curry"}`)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("update status %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(t, s, http.MethodGet, idPath, "")
	var updated core.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated record: %v", err)
	}
	if updated.Dish != "katsu curry" || updated.Amount.Tenths != 335 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) || updated.Interval != rec.Interval {
		t.Fatalf("update touched created_at/interval: %+v vs %+v", updated, rec)
	}

	resp = do(t, s, http.MethodDelete, idPath, "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", resp.Code)
	}
	resp = do(t, s, http.MethodGet, idPath, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("after delete, status %d", resp.Code)
	}
}

func TestUpdateAndDeleteMissingIDAreNoOps(t *testing.T) {
	s := newTestServer(t)

	resp := do(t, s, http.MethodPut, "/api/records/9999",
		`{"dish":"ghost","amount":1.0,"calories":1,"mode":"disciplined","category":"c"}`)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("update missing id status %d", resp.Code)
	}

	resp = do(t, s, http.MethodDelete, "/api/records/9999", "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete missing id status %d", resp.Code)
	}
}

func TestCreateRecordValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad mode", `{"dish":"a","amount":1.0,"calories":1,"mode":"feast","category":"c"}`},
		{"empty dish", `{"dish":"","amount":1.0,"calories":1,"mode":"indulgent","category":"c"}`},
		{"negative calories", `{"dish":"a","amount":1.0,"calories":-1,"mode":"indulgent","category":"c"}`},
		{"negative amount", `{"dish":"a","amount":-1.0,"calories":1,"mode":"indulgent","category":"c"}`},
		{"not json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, s, http.MethodPost, "/api/records", tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestWeekEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp := do(t, s, http.MethodPost, "/api/records",
		`{"dish":"salad","amount":25.5,"calories":420,"mode":"disciplined","category":"salad"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status %d", resp.Code)
	}

	resp = do(t, s, http.MethodGet, "/api/week/records", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("week records status %d", resp.Code)
	}
	var records []core.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode week records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d week records, want 1", len(records))
	}

	resp = do(t, s, http.MethodGet, "/api/week/stats", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("week stats status %d", resp.Code)
	}
	var stats core.WeekStats
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode week stats: %v", err)
	}
	if stats.TotalMeals != 1 || stats.TotalSpend.Tenths != 255 {
		t.Fatalf("bad stats: %+v", stats)
	}
	if stats.WeekdayMeals+stats.WeekendMeals != stats.TotalMeals {
		t.Fatal("meal counts do not partition")
	}
}
