package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/doorcheck/internal/constants"
)

// Mock Process
type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func TestGetAgentConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	// Default
	expectedDefault := filepath.Join(tempDir, constants.AgentAppIdentifier)
	dir, err := GetAgentConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	// Custom lockfile_dir via settings.json
	agentConfigDir := filepath.Join(tempDir, constants.AgentAppIdentifier)
	if err := os.MkdirAll(agentConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	customDir := "/custom/doorcheck/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(agentConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetAgentConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateAgentProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	tempDir := t.TempDir()
	lockfilePath := filepath.Join(tempDir, constants.NotifierLockfileName)

	writeLockfile := func(content string) {
		t.Helper()
		if err := os.WriteFile(lockfilePath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("missing lockfile", func(t *testing.T) {
		os.Remove(lockfilePath)
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error for missing lockfile")
		}
	})

	t.Run("malformed two-part lockfile", func(t *testing.T) {
		writeLockfile("8080|12345")
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error for malformed lockfile")
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		writeLockfile("99999|12345|secret")
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error for out-of-range port")
		}
	})

	t.Run("empty secret", func(t *testing.T) {
		writeLockfile("8080|12345| ")
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error for empty secret")
		}
	})

	t.Run("process not running", func(t *testing.T) {
		writeLockfile("8080|12345|secret")
		findProcessFunc = func(pid int) (ps.Process, error) {
			return nil, nil
		}
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error when process is not running")
		}
	})

	t.Run("wrong executable", func(t *testing.T) {
		writeLockfile("8080|12345|secret")
		findProcessFunc = func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: "impostor"}, nil
		}
		if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
			t.Error("expected error for a non-agent process")
		}
	})

	t.Run("valid lockfile and process", func(t *testing.T) {
		writeLockfile("8080|12345|topsecret")
		findProcessFunc = func(pid int) (ps.Process, error) {
			return &mockProcess{pid: pid, executable: constants.AgentExecutablePrefix}, nil
		}
		port, secret, err := findAndValidateAgentProcess(lockfilePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if port != "8080" || secret != "topsecret" {
			t.Errorf("expected (8080, topsecret), got (%s, %s)", port, secret)
		}
	})
}

func TestSendNotification(t *testing.T) {
	var gotSecret string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Doorcheck-Secret")
		gotBody = make([]byte, r.ContentLength)
		r.Body.Read(gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	payload := webhookPayload{Text: "hello", DurationMs: constants.NotificationDurationMs}
	if err := sendNotification(context.Background(), u.Port(), "topsecret", payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSecret != "topsecret" {
		t.Errorf("expected secret header, got %q", gotSecret)
	}
	if len(gotBody) == 0 {
		t.Error("expected a JSON body")
	}
}

func TestSendNotificationNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad secret", http.StatusForbidden)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	payload := webhookPayload{Text: "hello", DurationMs: constants.NotificationDurationMs}
	if err := sendNotification(context.Background(), u.Port(), "wrong", payload); err == nil {
		t.Error("expected error for non-OK response")
	}
}
