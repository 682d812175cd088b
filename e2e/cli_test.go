package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/benched/internal/api"
	"github.com/mcoot/benched/internal/factory"
	"github.com/mcoot/benched/internal/logging"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/roster"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	rosterFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "benched-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/benched")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		rosterFile: filepath.Join(t.TempDir(), "players.json"),
	}
}

// run executes the binary against its own roster file, capturing stdout only
func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--file", r.rosterFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "LOG_LEVEL=error", "BENCHED_STORAGE=file")
	output, err := cmd.Output()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().(*net.TCPAddr)
	require.NoError(t, listener.Close())

	logger := logging.NewWithWriter(os.Stderr, logging.ParseLevel("error"))

	// Create application
	app, err := factory.New(factory.Config{
		Logger:      logger,
		StorageType: factory.StorageTypeFile,
		FilePath:    filepath.Join(t.TempDir(), "server.json"),
	})
	require.NoError(t, err)
	require.NoError(t, app.Roster.Load(context.Background()))
	app.StartLiveUpdates()

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = addr.IP.String()
	serverCfg.Port = addr.Port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := api.Serve(ctx, api.RouterConfig{
			Logger: logger,
			Roster: app.Roster,
			Random: app.Random,
			Hub:    app.Hub,
		}, serverCfg); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + net.JoinHostPort(serverCfg.Host, strconv.Itoa(serverCfg.Port))
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			cancel()
			<-done
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), "output: %s", out)
	return v
}

func TestE2E_LocalRoster(t *testing.T) {
	srv := startTestServer(t)
	defer srv.shutdown()
	cli := newCLIRunner(t, srv.addr)

	out, err := cli.run("add", "Amy")
	require.NoError(t, err)
	amy := decode[model.Player](t, out)
	assert.Equal(t, "Amy", amy.Name)
	assert.True(t, amy.Active)

	_, err = cli.run("add", "Bob", "--color", "#224466")
	require.NoError(t, err)

	_, err = cli.run("toggle", "bob")
	require.NoError(t, err)

	out, err = cli.run("list")
	require.NoError(t, err)
	snap := decode[roster.Snapshot](t, out)
	require.Len(t, snap.Active, 1)
	require.Len(t, snap.Benched, 1)
	assert.Equal(t, amy.ID, snap.Active[0].ID)
	assert.Equal(t, "#224466", snap.Benched[0].Color)

	// The roster file is the documented format
	data, err := os.ReadFile(cli.rosterFile)
	require.NoError(t, err)
	doc := decode[model.Roster](t, string(data))
	assert.Len(t, doc.Names, 2)

	_, err = cli.run("delete", string(amy.ID))
	require.NoError(t, err)

	out, err = cli.run("list")
	require.NoError(t, err)
	snap = decode[roster.Snapshot](t, out)
	assert.Empty(t, snap.Active)
	assert.Len(t, snap.Benched, 1)
}

func TestE2E_EmptyNameFails(t *testing.T) {
	srv := startTestServer(t)
	defer srv.shutdown()
	cli := newCLIRunner(t, srv.addr)

	_, err := cli.run("add", "")
	assert.Error(t, err)
}

func TestE2E_RemoteRoster(t *testing.T) {
	srv := startTestServer(t)
	defer srv.shutdown()
	cli := newCLIRunner(t, srv.addr)

	for _, name := range []string{"Amy", "Bob", "Cid"} {
		_, _, err := srv.app.Roster.AddOrEdit("", name, "#333333")
		require.NoError(t, err)
	}

	out, err := cli.run("remote", "health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, out)

	out, err = cli.run("remote", "teams", "--size", "3")
	require.NoError(t, err)
	var teams struct {
		TeamSize int              `json:"team_size"`
		Teams    [][]model.Player `json:"teams"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &teams))
	assert.Equal(t, 3, teams.TeamSize)
	for _, team := range teams.Teams {
		assert.Len(t, team, 1)
	}

	active := srv.app.Roster.ActivePlayers()
	_, err = srv.app.Roster.QuickRemove(active[0].ID)
	require.NoError(t, err)

	out, err = cli.run("remote", "history")
	require.NoError(t, err)
	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	assert.Len(t, history, 4)

	_, err = cli.run("remote", "undo")
	require.NoError(t, err)
	assert.Len(t, srv.app.Roster.Players(), 3)

	out, err = cli.run("remote", "list")
	require.NoError(t, err)
	snap := decode[roster.Snapshot](t, out)
	assert.Len(t, snap.Active, 3)
}
