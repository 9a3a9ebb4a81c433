package testkit

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// recorder is a Service that appends its lifecycle events to a shared log.
type recorder struct {
	name     string
	props    map[string]any
	startErr error
	stopErr  error
	log      *[]string
}

func (r *recorder) Start() (map[string]any, error) {
	*r.log = append(*r.log, "start "+r.name)
	return r.props, r.startErr
}

func (r *recorder) Stop() error {
	*r.log = append(*r.log, "stop "+r.name)
	return r.stopErr
}

func (r *recorder) GetName() string { return r.name }

func TestTestEnv_Lifecycle(t *testing.T) {
	var log []string
	env := NewTestEnv(
		&recorder{name: "site", props: map[string]any{PropSiteDir: "/tmp/site"}, log: &log},
		&recorder{name: "server", props: map[string]any{PropBaseURL: "http://localhost:1"}, log: &log},
	)

	props, err := env.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if props[PropSiteDir] != "/tmp/site" || props[PropBaseURL] != "http://localhost:1" {
		t.Errorf("properties were not merged: %v", props)
	}
	if v, ok := env.GetContext().GetProperty(PropBaseURL); !ok || v != "http://localhost:1" {
		t.Errorf("GetProperty(%q) = %v, %v", PropBaseURL, v, ok)
	}
	if _, ok := env.GetContext().GetProperty("missing"); ok {
		t.Error("Expected missing property to be absent")
	}

	if err := env.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	want := []string{"start site", "start server", "stop server", "stop site"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
}

func TestTestEnv_StartFailureStopsStartedServices(t *testing.T) {
	var log []string
	errBoom := errors.New("boom")
	env := NewTestEnv(
		&recorder{name: "site", log: &log},
		&recorder{name: "server", startErr: errBoom, log: &log},
	)

	_, err := env.Start()
	if !errors.Is(err, errBoom) || !strings.Contains(err.Error(), "server") {
		t.Fatalf("Start() error = %v, want wrapped boom naming the server", err)
	}

	want := []string{"start site", "start server", "stop site"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
}

func TestTestEnv_StopJoinsErrors(t *testing.T) {
	var log []string
	err1, err2 := errors.New("first"), errors.New("second")
	env := NewTestEnv(
		&recorder{name: "a", stopErr: err1, log: &log},
		&recorder{name: "b", stopErr: err2, log: &log},
	)

	err := env.Stop()
	if !errors.Is(err, err1) || !errors.Is(err, err2) {
		t.Errorf("Stop() error = %v, want both errors", err)
	}
}

func TestGetFreePort(t *testing.T) {
	if port := MustGetFreePort(t); port <= 0 {
		t.Errorf("Expected positive port, got %d", port)
	}
	if _, err := getFreePortWithAddr("invalid:address:format"); err == nil {
		t.Error("Expected error for invalid address")
	}
}

func TestNewTestFlags(t *testing.T) {
	tests := []struct {
		name string
		opts *FlagOptions
		want map[string]string
	}{
		{
			name: "defaults",
			want: map[string]string{"transport": "sse", "auth-type": "none", "host": "localhost"},
		},
		{
			name: "overrides",
			opts: &FlagOptions{Port: 9999, Transport: "stdio", AuthType: "basic", Host: "127.0.0.1"},
			want: map[string]string{"transport": "stdio", "auth-type": "basic", "host": "127.0.0.1", "port": "9999"},
		},
		{
			name: "site and api keys",
			opts: &FlagOptions{SiteDir: "/srv/site", AuthType: "apikey", APIKeys: []string{"k1", "k2"}},
			want: map[string]string{"output": "/srv/site", "auth-api-keys": "[k1,k2]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewTestFlags(t, tt.opts)

			for name, want := range tt.want {
				if got := flags.Lookup(name).Value.String(); got != want {
					t.Errorf("--%s = %q, want %q", name, got, want)
				}
			}
			if port, _ := flags.GetInt("port"); port <= 0 {
				t.Errorf("Expected an assigned port, got %d", port)
			}
		})
	}
}

func TestSiteService(t *testing.T) {
	svc := &SiteService{Files: map[string]string{
		"docs/a/content": "# Alpha\n\nFirst document.\n",
		"docs/b/content": "plain text",
		"docs/b/other":   "ignored",
	}}

	props, err := svc.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if props[PropRecords] != 2 {
		t.Errorf("Expected 2 records, got %v", props[PropRecords])
	}
	siteDir, _ := props[PropSiteDir].(string)
	if _, err := os.Stat(filepath.Join(siteDir, "index.html")); err != nil {
		t.Errorf("Expected generated index: %v", err)
	}
	indexDir, _ := props[PropIndexDir].(string)
	if _, err := os.Stat(indexDir); err != nil {
		t.Errorf("Expected search index: %v", err)
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := os.Stat(siteDir); !os.IsNotExist(err) {
		t.Error("Expected Stop to remove generated files")
	}
	if svc.GetName() != "site" {
		t.Errorf("GetName() = %q", svc.GetName())
	}
}
