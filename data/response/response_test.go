package response

import (
	"errors"
	"testing"

	"prtgctl/data/model"
)

const sensorTable = `<?xml version="1.0" encoding="UTF-8" ?>
<sensors totalcount="2" listend="1">
  <prtg-version>18.1.37.1234</prtg-version>
  <item>
    <objid>1001</objid>
    <name>Ping</name>
    <type_raw>ping</type_raw>
    <device>dc-1</device>
    <group>Servers</group>
    <probe>Local Probe</probe>
    <parentid>3001</parentid>
    <status>Up</status>
    <status_raw>3</status_raw>
    <message_raw>OK</message_raw>
    <tags>pingsensor</tags>
    <interval_raw>60</interval_raw>
  </item>
  <item>
    <objid>1002</objid>
    <name>CPU Load</name>
    <parentid>3001</parentid>
    <status_raw>5</status_raw>
    <tags></tags>
  </item>
</sensors>`

func TestSensors(t *testing.T) {
	sensors, err := Sensors([]byte(sensorTable))
	if err != nil {
		t.Fatal(err)
	}
	if len(sensors) != 2 {
		t.Fatalf("got %d sensors, want 2", len(sensors))
	}
	s := sensors[0]
	if s.ID != 1001 || s.Name != "Ping" || s.Type != "ping" || s.ParentID != 3001 || s.Interval != 60 {
		t.Errorf("unexpected sensor %+v", s)
	}
	if s.Status != model.StatusUp {
		t.Errorf("status = %v, want Up", s.Status)
	}
	if sensors[1].Status != model.StatusDown {
		t.Errorf("status = %v, want Down", sensors[1].Status)
	}
}

func TestSingleItemTable(t *testing.T) {
	body := `<groups totalcount="1"><item><objid>2000</objid><name>Servers</name><parentid>1</parentid></item></groups>`
	groups, err := Groups([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || groups[0].ID != 2000 || groups[0].Name != "Servers" {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestEmptyTable(t *testing.T) {
	for _, body := range []string{
		`<devices totalcount="0" listend="1"></devices>`,
		`<devices totalcount="0"><prtg-version>18.1</prtg-version></devices>`,
	} {
		devices, err := Devices([]byte(body))
		if err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if len(devices) != 0 {
			t.Fatalf("%s: got %d devices", body, len(devices))
		}
	}
}

func TestChannelTable(t *testing.T) {
	body := `<channels><item><objid>0</objid><name>Total</name><lastvalue>12 %</lastvalue></item>` +
		`<item><objid>1</objid><name>Response Time</name><lastvalue>3 msec</lastvalue></item></channels>`
	chans, err := Channels([]byte(body), 1001)
	if err != nil {
		t.Fatal(err)
	}
	if len(chans) != 2 {
		t.Fatalf("got %d channels", len(chans))
	}
	if chans[1].ID != 1 || chans[1].SensorID != 1001 || chans[1].Name != "Response Time" || chans[1].Factor != "1" {
		t.Errorf("unexpected channel %+v", chans[1])
	}
}

func TestServerError(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" ?><prtg><version>18.1.37.1234</version><error>The selected object cannot be used here.</error></prtg>`

	_, err := Sensors([]byte(body))
	var serr *ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serr.Message != "The selected object cannot be used here." {
		t.Fatalf("message = %q", serr.Message)
	}

	if _, ok := ErrorMessage([]byte(sensorTable)); ok {
		t.Fatal("table body reported as error")
	}
	if _, ok := ErrorMessage([]byte("not xml at all <")); ok {
		t.Fatal("garbage reported as error")
	}
}

const channelEdit = `<html><body><form>
<input type="text" name="name_1" value="Response Time">
<input type="radio" name="limitmode_1" value="0">
<input type="radio" name="limitmode_1" value="1" checked>
<input type="text" name="limitmaxerror_1" value="100">
<input type="hidden" name="limitmaxerror_1_factor" value="1000">
<input type="text" name="limitminerror_1" value="">
<input type="text" name="limitmaxwarning_1" value="80,5">
<input type="text" name="limitminwarning_1" value="">
<input type="text" name="limiterrormsg_1" value="too slow">
<input type="text" name="limitwarningmsg_1" value="">
<select name="decimalmode_1"><option value="0">Auto</option><option value="2" selected>Custom</option></select>
<textarea name="comments">line one</textarea>
</form></body></html>`

func TestChannelSettings(t *testing.T) {
	ch, err := ChannelSettings([]byte(channelEdit), 1001, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ch.SensorID != 1001 || ch.ID != 1 || ch.Name != "Response Time" {
		t.Errorf("unexpected identity %+v", ch)
	}
	if !ch.LimitsEnabled {
		t.Error("limits should be enabled")
	}
	if ch.UpperErrorLimit == nil || *ch.UpperErrorLimit != 100 {
		t.Errorf("upper error = %v", ch.UpperErrorLimit)
	}
	if ch.LowerErrorLimit != nil || ch.LowerWarningLimit != nil {
		t.Error("empty limits should be nil")
	}
	if ch.UpperWarningLimit == nil || *ch.UpperWarningLimit != 80.5 {
		t.Errorf("upper warning = %v", ch.UpperWarningLimit)
	}
	if ch.ErrorLimitMessage != "too slow" {
		t.Errorf("error message = %q", ch.ErrorLimitMessage)
	}
	if ch.Factor != "1000" {
		t.Errorf("factor = %q", ch.Factor)
	}
}

func TestFormInputs(t *testing.T) {
	inputs, err := FormInputs([]byte(channelEdit))
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{
		"limitmode_1":   "1",
		"decimalmode_1": "2",
		"comments":      "line one",
	}
	for name, want := range tests {
		if got := inputs[name]; got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestChannelSettingsWithoutLimits(t *testing.T) {
	ch, err := ChannelSettings([]byte(`<form><input type="radio" name="limitmode_2" value="0" checked></form>`), 2001, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ch.HasLimit() || ch.LimitsEnabled || ch.LimitFactor() != "1" {
		t.Fatalf("unexpected channel %+v", ch)
	}
}
