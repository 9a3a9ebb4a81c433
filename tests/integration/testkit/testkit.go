package testkit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/contentkit/internal/app"
	"github.com/sha1n/contentkit/internal/config"
	"github.com/sha1n/contentkit/internal/site"
	"github.com/spf13/pflag"
)

// Property names published by the services in this package
const (
	PropSourceDir = "source_dir"
	PropSiteDir   = "site_dir"
	PropIndexDir  = "index_dir"
	PropRecords   = "records"
	PropBaseURL   = "base_url"
)

// Service represents a test service that can be started and stopped
type Service interface {
	Start() (map[string]any, error)
	Stop() error
	GetName() string
}

// TestEnvContext provides access to properties collected during environment startup
type TestEnvContext interface {
	GetProperties() map[string]any
	GetProperty(name string) (any, bool)
}

// TestEnv manages the lifecycle of test services
type TestEnv interface {
	Start() (map[string]any, error)
	Stop() error
	GetContext() TestEnvContext
}

type testEnvContextImpl struct {
	properties map[string]any
}

func (c *testEnvContextImpl) GetProperties() map[string]any {
	return c.properties
}

func (c *testEnvContextImpl) GetProperty(name string) (any, bool) {
	val, ok := c.properties[name]
	return val, ok
}

type testEnvImpl struct {
	services []Service
	context  *testEnvContextImpl
}

// NewTestEnv creates a new test environment with the given services
func NewTestEnv(services ...Service) TestEnv {
	return &testEnvImpl{
		services: services,
		context:  &testEnvContextImpl{properties: make(map[string]any)},
	}
}

func (e *testEnvImpl) Start() (map[string]any, error) {
	for i, s := range e.services {
		props, err := s.Start()
		if err != nil {
			e.stopAll(e.services[:i])
			return nil, fmt.Errorf("failed to start %s: %w", s.GetName(), err)
		}
		for k, v := range props {
			e.context.properties[k] = v
		}
	}
	return e.context.properties, nil
}

// Stop stops all services in reverse start order and joins their errors
func (e *testEnvImpl) Stop() error {
	return e.stopAll(e.services)
}

func (e *testEnvImpl) stopAll(services []Service) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", services[i].GetName(), err))
		}
	}
	return errors.Join(errs...)
}

func (e *testEnvImpl) GetContext() TestEnvContext {
	return e.context
}

// GetFreePort returns a free port from the kernel
func GetFreePort() (int, error) {
	return getFreePortWithAddr("localhost:0")
}

// MustGetFreePort returns a free port or fails the test
func MustGetFreePort(t testing.TB) int {
	t.Helper()
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("Failed to get free port: %v", err)
	}
	return port
}

func getFreePortWithAddr(addrStr string) (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", addrStr)
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// FlagOptions configures NewTestFlags
type FlagOptions struct {
	Port      int      // Uses free port if 0
	Transport string   // Defaults to "sse"
	AuthType  string   // Defaults to "none"
	Host      string   // Defaults to "localhost"
	SiteDir   string   // Site output directory; unset keeps the default
	APIKeys   []string // Set when AuthType is apikey
}

// NewTestFlags creates a configured serve FlagSet for testing
func NewTestFlags(t testing.TB, opts *FlagOptions) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterGlobalFlags(flags)
	app.RegisterServerFlags(flags)

	o := FlagOptions{Transport: "sse", AuthType: "none", Host: "localhost"}
	if opts != nil {
		if opts.Port != 0 {
			o.Port = opts.Port
		}
		if opts.Transport != "" {
			o.Transport = opts.Transport
		}
		if opts.AuthType != "" {
			o.AuthType = opts.AuthType
		}
		if opts.Host != "" {
			o.Host = opts.Host
		}
		o.SiteDir = opts.SiteDir
		o.APIKeys = opts.APIKeys
	}
	if o.Port == 0 {
		o.Port = MustGetFreePort(t)
	}

	_ = flags.Set("port", fmt.Sprintf("%d", o.Port))
	_ = flags.Set("transport", o.Transport)
	_ = flags.Set("auth-type", o.AuthType)
	_ = flags.Set("host", o.Host)
	if o.SiteDir != "" {
		_ = flags.Set("output", o.SiteDir)
	}
	if len(o.APIKeys) > 0 {
		_ = flags.Set("auth-api-keys", strings.Join(o.APIKeys, ","))
	}

	return flags
}

// SiteService writes Files (relative path -> content) into a source tree and
// generates an indexed site from it
type SiteService struct {
	Files map[string]string

	root string
}

// Start builds the site and publishes its directories and record count
func (s *SiteService) Start() (map[string]any, error) {
	root, err := os.MkdirTemp("", "contentkit-site-*")
	if err != nil {
		return nil, err
	}
	s.root = root

	source := filepath.Join(root, "source")
	for rel, content := range s.Files {
		path := filepath.Join(source, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, err
		}
	}

	out := filepath.Join(root, "site")
	settings := &config.SiteSettings{
		SourceDir:       source,
		OutputDir:       out,
		ContentFilename: site.DefaultContentFilename,
		MaxFileSize:     1 << 20,
		PreviewLength:   150,
		Workers:         2,
		Index:           true,
		IndexDir:        filepath.Join(out, config.SearchIndexDirName),
	}
	res, err := site.Build(context.Background(), settings)
	if err != nil {
		return nil, fmt.Errorf("site build failed: %w", err)
	}

	return map[string]any{
		PropSourceDir: source,
		PropSiteDir:   out,
		PropIndexDir:  settings.IndexDir,
		PropRecords:   len(res.Records),
	}, nil
}

// Stop removes the generated files
func (s *SiteService) Stop() error {
	if s.root == "" {
		return nil
	}
	return os.RemoveAll(s.root)
}

// GetName returns the service name
func (s *SiteService) GetName() string { return "site" }

// ServerService runs the serve command over HTTP until stopped
type ServerService struct {
	Flags *pflag.FlagSet
	// ReadyTimeout bounds the wait for /health; defaults to 10s
	ReadyTimeout time.Duration

	mu   sync.Mutex
	srv  *http.Server
	done chan error
}

// Start launches the server and waits until /health answers
func (s *ServerService) Start() (map[string]any, error) {
	params := app.DefaultRunParams()
	params.StartSSEServer = func(m *mcp.Server, settings *config.Settings) error {
		srv, err := app.NewSSEServer(m, settings)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.srv = srv
		s.mu.Unlock()
		return srv.ListenAndServe()
	}

	s.done = make(chan error, 1)
	go func() {
		s.done <- app.RunWithDeps(context.Background(), params, s.Flags, "test")
	}()

	host, _ := s.Flags.GetString("host")
	port, _ := s.Flags.GetInt("port")
	baseURL := fmt.Sprintf("http://%s:%d", host, port)

	timeout := s.ReadyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if err := waitHealthy(baseURL+"/health", timeout, s.done); err != nil {
		return nil, err
	}
	return map[string]any{PropBaseURL: baseURL}, nil
}

// Stop shuts the server down
func (s *ServerService) Stop() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	select {
	case err := <-s.done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}
	return nil
}

// GetName returns the service name
func (s *ServerService) GetName() string { return "server" }

func waitHealthy(url string, timeout time.Duration, done <-chan error) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case err := <-done:
			return fmt.Errorf("server exited before becoming healthy: %w", err)
		default:
		}

		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server not healthy after %s", timeout)
}
