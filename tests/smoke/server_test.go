//go:build smoke

package smoke

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codr1/Courtside/internal/booking"
	"github.com/codr1/Courtside/internal/db"
	"github.com/codr1/Courtside/internal/testutil"
)

type fixture struct {
	courtID  int64
	racketID int64
}

// seedDatabase migrates a fresh database file and adds the rows the booking
// flow needs. The server opens the same file afterwards.
func seedDatabase(t *testing.T, path string) fixture {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create db dir: %v", err)
	}
	database, err := db.New(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	return fixture{
		courtID:  testutil.InsertCourt(t, database, "Court 1", "indoor", 1500),
		racketID: testutil.InsertEquipment(t, database, "Racket", "racket", 500, 4),
	}
}

type runningServer struct {
	baseURL string
	client  *http.Client
	output  *bytes.Buffer
}

// startServer builds cmd/server, runs it against dbPath and waits for
// /health. The process is interrupted when the test ends.
func startServer(t *testing.T, dbPath string) *runningServer {
	t.Helper()
	dir := t.TempDir()

	bin := filepath.Join(dir, "courtside-server")
	build := exec.Command("go", "build", "-o", bin, "./cmd/server")
	build.Dir = findRepoRoot(t)
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build server: %v\n%s", err, out)
	}

	port := reservePort(t)
	config := fmt.Sprintf(`app:
  name: "Courtside"
  environment: "development"
  port: %d

database:
  driver: "sqlite"
  filename: %q

booking:
  timezone: "UTC"

events:
  driver: "log"
`, port, filepath.ToSlash(dbPath))
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output := &bytes.Buffer{}
	cmd := exec.Command(bin, "-config", configPath)
	cmd.Dir = dir
	cmd.Stdout = output
	cmd.Stderr = output
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()
	t.Cleanup(func() {
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-exited:
		case <-time.After(5 * time.Second):
			_ = cmd.Process.Kill()
			<-exited
		}
	})

	srv := &runningServer{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		client:  &http.Client{Timeout: 2 * time.Second},
		output:  output,
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		select {
		case err := <-exited:
			t.Fatalf("server exited before becoming healthy: %v\n%s", err, output)
		default:
		}
		resp, err := srv.client.Get(srv.baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return srv
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for /health\n%s", output)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// call sends body as JSON and decodes the response into out when out is
// non-nil. It returns the status code.
func (s *runningServer) call(t *testing.T, method, path string, body, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode %s %s: %v", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v\n%s", method, path, err, s.output)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s (status %d): %v", method, path, resp.StatusCode, err)
		}
	}
	return resp.StatusCode
}

func TestBookingFlowAgainstBinary(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db", "smoke.db")
	fx := seedDatabase(t, dbPath)
	srv := startServer(t, dbPath)

	day := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	start := day.Add(10 * time.Hour)
	end := start.Add(time.Hour)

	slot := map[string]any{
		"court_id":   fx.courtID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
	create := map[string]any{
		"user_id":         "smoke-user",
		"user_name":       "Smoke User",
		"user_email":      "smoke@example.com",
		"court_id":        fx.courtID,
		"start_time":      start.Format(time.RFC3339),
		"end_time":        end.Format(time.RFC3339),
		"equipment_items": []map[string]any{{"equipment_id": fx.racketID, "quantity": 1}},
	}

	var created struct {
		BookingID        int64   `json:"booking_id"`
		BookingReference string  `json:"booking_reference"`
		TotalPrice       float64 `json:"total_price"`
	}
	if status := srv.call(t, http.MethodPost, "/api/v1/bookings", create, &created); status != http.StatusCreated {
		t.Fatalf("create booking: status %d\n%s", status, srv.output)
	}
	if !strings.HasPrefix(created.BookingReference, "BK") {
		t.Fatalf("expected BK reference, got %q", created.BookingReference)
	}

	var details booking.BookingDetails
	if status := srv.call(t, http.MethodGet, "/api/v1/bookings/"+created.BookingReference, nil, &details); status != http.StatusOK {
		t.Fatalf("get booking: status %d", status)
	}
	if details.BookingReference != created.BookingReference || details.Status != booking.StatusConfirmed {
		t.Fatalf("unexpected booking %+v", details)
	}
	if len(details.Equipment) != 1 || details.Equipment[0].Quantity != 1 {
		t.Fatalf("expected one racket on the booking, got %+v", details.Equipment)
	}

	var taken booking.Availability
	if status := srv.call(t, http.MethodPost, "/api/v1/bookings/availability", slot, &taken); status != http.StatusOK {
		t.Fatalf("availability: status %d", status)
	}
	if taken.Available {
		t.Fatal("expected the booked slot to be unavailable")
	}

	if status := srv.call(t, http.MethodPost, "/api/v1/bookings/"+created.BookingReference+"/cancel", nil, nil); status != http.StatusOK {
		t.Fatalf("cancel booking: status %d", status)
	}
	if status := srv.call(t, http.MethodPost, "/api/v1/bookings/"+created.BookingReference+"/cancel", nil, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 on second cancel, got %d", status)
	}

	var freed booking.Availability
	if status := srv.call(t, http.MethodPost, "/api/v1/bookings/availability", slot, &freed); status != http.StatusOK {
		t.Fatalf("availability after cancel: status %d", status)
	}
	if !freed.Available {
		t.Fatalf("expected slot to be free after cancel, got %+v", freed)
	}
}

func TestMigrationsRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)

	migrator, err := db.NewMigrator(database.DB)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := migrator.Down(); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if n := testutil.QueryInt(t, database, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'bookings'"); n != 0 {
		t.Fatalf("expected bookings table dropped, found %d", n)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	testutil.InsertCourt(t, database, "Court 1", "indoor", 1500)
}

func reservePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above working directory")
		}
		dir = parent
	}
}
