package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	sent  []published
	token *fakeToken
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.sent = append(f.sent, published{topic, qos, payload.([]byte)})
	return f.token
}

func TestEncode(t *testing.T) {
	ch := 2
	data, err := Encode(Change{
		RequestID: "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		Endpoint:  "editsettings",
		ObjectIDs: []int{1001, 2001},
		Channel:   &ch,
		Params:    []string{"limiterrormsg_2", "limitmode_2"},
		Applied:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"request_id":"7d444840-9dc0-11d1-b245-5ffdce74fad2","endpoint":"editsettings","object_ids":[1001,2001],"channel":2,"params":["limiterrormsg_2","limitmode_2"],"applied":"2024-03-01T12:00:00Z"}`
	if string(data) != want {
		t.Errorf("Encode()\n got  %s\n want %s", data, want)
	}
}

func TestEncodeKeepsHTMLCharacters(t *testing.T) {
	data, err := Encode(Change{Endpoint: "a&b<c>", ObjectIDs: []int{1}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"request_id":"","endpoint":"a&b<c>","object_ids":[1],"params":[],"applied":"0001-01-01T00:00:00Z"}`
	if string(data) != want {
		t.Errorf("Encode() = %s", data)
	}
}

func TestNotify(t *testing.T) {
	fc := &fakeClient{token: newToken(nil, true)}
	p := &Publisher{pub: fc, topic: "prtgctl/changes", qos: 1}

	if err := p.Notify(context.Background(), Change{Endpoint: "editsettings", ObjectIDs: []int{1001}}); err != nil {
		t.Fatal(err)
	}
	if len(fc.sent) != 1 || fc.sent[0].topic != "prtgctl/changes" || fc.sent[0].qos != 1 {
		t.Fatalf("unexpected publish %+v", fc.sent)
	}

	fc.token = newToken(errors.New("not connected"), true)
	if err := p.Notify(context.Background(), Change{}); err == nil || err.Error() != "not connected" {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestNotifyHonorsContext(t *testing.T) {
	fc := &fakeClient{token: newToken(nil, false)}
	p := &Publisher{pub: fc, topic: "t"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := p.Notify(ctx, Change{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
