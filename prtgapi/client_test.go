package prtgapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prtgctl/auth"
	"prtgctl/data/model"
)

var testCreds = auth.Credentials{Username: "username", PassHash: "12345678"}

// recorder answers requests by endpoint and records every URL.
type recorder struct {
	mu        sync.Mutex
	urls      []string
	responses map[string]string
}

func (r *recorder) Execute(ctx context.Context, url string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	for endpoint, body := range r.responses {
		if strings.Contains(url, endpoint+"?") {
			return body, nil
		}
	}
	return "", nil
}

func newTestClient(t *testing.T, rec *recorder, opts ...Option) *Client {
	t.Helper()
	c, err := New("https://prtg.example.com", testCreds, append([]Option{WithExecutor(rec)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestURL(t *testing.T) {
	c := newTestClient(t, &recorder{})
	params := model.Parameters{model.IDParameter([]int{1001, 1002}), model.NewParameter("name_", "a b")}

	want := "https://prtg.example.com/editsettings?id=1001,1002&name_=a+b&username=username&passhash=12345678"
	if got := c.URL("editsettings", params); got != want {
		t.Errorf("URL() = %s, want %s", got, want)
	}
	if got := c.URL("api/getstatus.htm", nil); got != "https://prtg.example.com/api/getstatus.htm?username=username&passhash=12345678" {
		t.Errorf("URL() = %s", got)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New("", testCreds); err == nil {
		t.Error("expected error for empty server")
	}
	if _, err := New("prtg.example.com", auth.Credentials{Username: "u"}); !errors.Is(err, auth.ErrMissingCredentials) {
		t.Errorf("expected missing credentials, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	rec := &recorder{responses: map[string]string{
		statusEndpoint: `{"Version":"17.3.33.2830+","NewMessages":"0"}`,
	}}
	c := newTestClient(t, rec)

	for i := 0; i < 2; i++ {
		v, err := c.Version(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if v != (model.Version{Major: 17, Minor: 3, Build: 33, Revision: 2830}) {
			t.Fatalf("Version() = %v", v)
		}
	}
	if len(rec.urls) != 1 {
		t.Fatalf("expected a single probe, got %q", rec.urls)
	}
	if rec.urls[0] != "https://prtg.example.com/api/getstatus.htm?id=0&username=username&passhash=12345678" {
		t.Errorf("probe url = %s", rec.urls[0])
	}
}

func TestVersionPinned(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, rec, WithVersion(model.NewVersion(18, 1)))
	if _, err := c.Version(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(rec.urls) != 0 {
		t.Fatalf("unexpected requests %q", rec.urls)
	}
}

func TestVersionSharedProbe(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	exec := ExecutorFunc(func(ctx context.Context, url string) (string, error) {
		calls.Add(1)
		<-release
		return `{"Version":"18.1.37.1234"}`, nil
	})
	c, err := New("prtg.example.com", testCreds, WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Version(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected 1 probe, got %d", n)
	}
}

func TestVersionCancelled(t *testing.T) {
	exec := ExecutorFunc(func(ctx context.Context, url string) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return `{"Version":"18.1"}`, nil
	})
	c, err := New("prtg.example.com", testCreds, WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Version(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type observation struct {
	endpoint string
	failed   bool
}

type fakeObserver struct{ seen []observation }

func (o *fakeObserver) ObserveRequest(endpoint string, _ time.Duration, err error) {
	o.seen = append(o.seen, observation{endpoint, err != nil})
}

func TestObserver(t *testing.T) {
	obs := &fakeObserver{}
	exec := ExecutorFunc(func(ctx context.Context, url string) (string, error) {
		if strings.Contains(url, editEndpoint) {
			return "", &RequestError{StatusCode: 400, Message: "bad"}
		}
		return "", nil
	})
	c, err := New("prtg.example.com", testCreds, WithExecutor(exec), WithObserver(obs))
	if err != nil {
		t.Fatal(err)
	}

	c.AddSensor(context.Background(), 3001, nil)
	err = c.EditSettings(context.Background(), model.Parameters{model.IDParameter([]int{1})})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != 400 {
		t.Fatalf("expected RequestError, got %v", err)
	}

	want := []observation{{addSensorEndpoint, false}, {editEndpoint, true}}
	if len(obs.seen) != len(want) {
		t.Fatalf("observed %v", obs.seen)
	}
	for i := range want {
		if obs.seen[i] != want[i] {
			t.Errorf("observation %d = %v, want %v", i, obs.seen[i], want[i])
		}
	}
}

func TestEditSettingsRequiresID(t *testing.T) {
	c := newTestClient(t, &recorder{})
	if err := c.EditSettings(context.Background(), model.Parameters{model.NewParameter("name_", "x")}); err == nil {
		t.Fatal("expected error")
	}
}

func TestEditSettingsBodyError(t *testing.T) {
	rec := &recorder{responses: map[string]string{
		editEndpoint: `<prtg><error>Sorry, the selected object cannot be used here.</error></prtg>`,
	}}
	c := newTestClient(t, rec)
	err := c.EditSettings(context.Background(), model.Parameters{model.IDParameter([]int{1001})})
	if err == nil || err.Error() != "Sorry, the selected object cannot be used here." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestTableBodyError(t *testing.T) {
	const denied = `<prtg><error>The selected object cannot be used here.</error></prtg>`
	rec := &recorder{responses: map[string]string{
		tableEndpoint:       denied,
		channelEditEndpoint: denied,
	}}
	c := newTestClient(t, rec)
	ctx := context.Background()

	_, sensorsErr := c.GetSensors(ctx, Filter{})
	_, settingsErr := c.ChannelSettings(ctx, 1001, 2)
	for name, err := range map[string]error{"table": sensorsErr, "channel settings": settingsErr} {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("%s: expected RequestError, got %v", name, err)
		}
		if reqErr.Message != "The selected object cannot be used here." {
			t.Errorf("%s: unexpected message %q", name, reqErr.Message)
		}
	}
}

func TestHTTPExecutor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("fine"))
		case "/xml":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`<?xml version="1.0"?><prtg><version>18.1</version><error>Missing id</error></prtg>`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
		}
	}))
	defer srv.Close()

	e := NewHTTPExecutor(srv.Client())
	body, err := e.Execute(context.Background(), srv.URL+"/ok")
	if err != nil || body != "fine" {
		t.Fatalf("Execute() = %q, %v", body, err)
	}

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/xml", 400, "Missing id"},
		{"/denied", 401, "Unauthorized"},
	}
	for _, tt := range tests {
		_, err := e.Execute(context.Background(), srv.URL+tt.path)
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("%s: expected RequestError, got %v", tt.path, err)
		}
		if reqErr.StatusCode != tt.status || reqErr.Message != tt.msg {
			t.Errorf("%s: got %d %q", tt.path, reqErr.StatusCode, reqErr.Message)
		}
	}
}
