package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"prtgctl/data/model"
	"prtgctl/property"
	"prtgctl/prtg"
	"prtgctl/sensorparams"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("1001, 1002,,2001")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != 1001 || ids[2] != 2001 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if _, err := parseIDs("1001,abc"); err == nil {
		t.Error("expected error for non numeric id")
	}
	if _, err := parseIDs(" , "); !errors.Is(err, prtg.ErrNoObjects) {
		t.Errorf("expected ErrNoObjects, got %v", err)
	}
}

func TestObjectParams(t *testing.T) {
	params, err := objectParams([]string{"name=ping", "Interval=60", "Tags="})
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 3 || params[0].Property != property.Name || params[0].Value != "ping" {
		t.Fatalf("unexpected params %+v", params)
	}
	if params[2].Value != nil {
		t.Errorf("empty value should clear the property, got %v", params[2].Value)
	}

	if _, err := objectParams([]string{"Nope=1"}); err == nil {
		t.Error("expected unknown property error")
	}
	if _, err := objectParams([]string{"Name"}); err == nil {
		t.Error("expected error without '='")
	}
}

func TestChannelParams(t *testing.T) {
	params, err := channelParams([]string{"UpperErrorLimit=100", "ErrorLimitMessage=a=b"})
	if err != nil {
		t.Fatal(err)
	}
	if params[1].Value != "a=b" {
		t.Errorf("value should keep '=', got %v", params[1].Value)
	}
	if _, err := channelParams([]string{"Name=x"}); err == nil {
		t.Error("object property accepted as channel property")
	}
}

func TestPrintTablePlain(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"ID", "Name"}, [][]string{{"1001", "Ping"}, {"1002", "HTTP"}})
	want := "ID\tName\n1001\tPing\n1002\tHTTP\n"
	if buf.String() != want {
		t.Errorf("printTable() = %q, want %q", buf.String(), want)
	}
}

func resetFlags() {
	cfgFile, profileFile, profileName = "", "", ""
	server, username, password, passhash = "", "", "", ""
	locale, logLevel, version = "", "", ""
}

func TestLoadConfigOverrides(t *testing.T) {
	defer resetFlags()
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "prtgctl.yaml")
	if err := os.WriteFile(cfgFile, []byte("server: prtg.example.com\nusername: fromfile\nlocale: de-DE\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	profileFile = filepath.Join(dir, "profiles.ini")
	if err := os.WriteFile(profileFile, []byte("[lab]\nserver = lab.example.com\nusername = lab\npasshash = 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	profileName = "lab"
	passhash = "99"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "lab.example.com" || cfg.Username != "lab" || cfg.PassHash != "99" || cfg.Locale != "de-DE" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	profileFile = ""
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for --profile without --profiles")
	}
}

func TestSensorParams(t *testing.T) {
	defer func() {
		sensorType, sensorName, exeFile = "exexml", "", ""
		services, rawParams = nil, nil
	}()

	sensorType, sensorName, exeFile = "exexml", "Backup", "backup.ps1"
	p, err := sensorParams()
	if err != nil {
		t.Fatal(err)
	}
	x, ok := p.(*sensorparams.ExeXML)
	if !ok || x.Name != "Backup" || x.ExeFile != "backup.ps1" {
		t.Fatalf("unexpected params %#v", p)
	}

	sensorType, services = "wmiservice", []string{"Spooler"}
	if p, err = sensorParams(); err != nil {
		t.Fatal(err)
	}
	if w, ok := p.(*sensorparams.WMIService); !ok || len(w.Services) != 1 {
		t.Fatalf("unexpected params %#v", p)
	}

	rawParams = []string{"name_=Ping", "sensortype=ping"}
	if p, err = sensorParams(); err != nil || p.SensorType() != "ping" {
		t.Fatalf("unexpected raw params %#v, %v", p, err)
	}

	rawParams, sensorType = nil, "snmp"
	var unsupported *sensorparams.UnsupportedTypeError
	if _, err := sensorParams(); !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
}

func TestBrowseModelNavigation(t *testing.T) {
	var m tea.Model = browseModel{loading: true}
	m, _ = m.Update(sensorsMsg{{ID: 1001, Name: "Ping"}, {ID: 1002, Name: "HTTP"}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bm := m.(browseModel)
	if bm.sensor == nil || bm.sensor.ID != 1002 || !bm.loading || cmd == nil {
		t.Fatalf("enter should load channels of the selected sensor: %+v", bm)
	}

	limit := 100.0
	m, _ = m.Update(channelsMsg{{ID: 1, Name: "Response Time", LimitsEnabled: true, UpperErrorLimit: &limit}})
	bm = m.(browseModel)
	if bm.view != viewChannels || !strings.Contains(bm.View(), "max err 100") {
		t.Fatalf("unexpected view:\n%s", bm.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(browseModel).view != viewSensors {
		t.Fatal("esc should return to the sensor list")
	}

	m, _ = m.Update(errMsg{errors.New("boom")})
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("error not shown:\n%s", m.View())
	}
}

func TestLimitSummary(t *testing.T) {
	if got := limitSummary(model.Channel{}); got != "limits off" {
		t.Errorf("limitSummary() = %q", got)
	}
}
