package daemon

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/config"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/interval"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

// testProfile is non-degenerate on both axes: dead zone [-1, 1] inside
// travel [-4, 4].
func testProfile() *calibration.Profile {
	return &calibration.Profile{
		CenterXInterval: interval.Of(-1, 1),
		CenterYInterval: interval.Of(-1, 1),
		XInterval:       interval.Of(-4, 4),
		YInterval:       interval.Of(-4, 4),
	}
}

func setupLoopState(t *testing.T, mode translator.Mode) {
	t.Helper()

	c, err := config.NewFile(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	conf = c

	origConvert := convert
	convert = func(v float64) float64 { return v }
	t.Cleanup(func() { convert = origConvert })

	if err := installProfile(testProfile()); err != nil {
		t.Fatalf("installProfile returned error: %v", err)
	}

	stateMu.Lock()
	trans = translator.New(mode, conf.ScreenWidth(), conf.ScreenHeight())
	stateMu.Unlock()
}

func TestStepDispatchesMovementAndButtons(t *testing.T) {
	setupLoopState(t, translator.ModeRelative)

	origRead := devReadSample
	origInject := injectActions
	t.Cleanup(func() {
		devReadSample = origRead
		injectActions = origInject
	})

	devReadSample = func() (protocol.RawSample, error) {
		return protocol.RawSample{XRaw: 4, YRaw: 0, Buttons: 0x01}, nil
	}

	var got []string
	injectActions = func(tokens []string) error {
		got = append([]string{}, tokens...)
		return nil
	}

	if err := step(); err != nil {
		t.Fatalf("step returned error: %v", err)
	}

	// XRaw 4 maps to position 1, cubed relative delta 1000. YRaw 0 is inside
	// the dead zone. Bit 0 rising edge presses Right.
	want := []string{"mousemove_relative", "--", "1000", "0", "keydown", "Right"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("injected tokens = %v, want %v", got, want)
	}
}

func TestStepSuppressesIdleReading(t *testing.T) {
	setupLoopState(t, translator.ModeRelative)

	origRead := devReadSample
	origInject := injectActions
	t.Cleanup(func() {
		devReadSample = origRead
		injectActions = origInject
	})

	devReadSample = func() (protocol.RawSample, error) {
		return protocol.RawSample{XRaw: 0, YRaw: 0, Buttons: 0}, nil
	}

	injected := false
	injectActions = func(tokens []string) error {
		injected = true
		return nil
	}

	if err := step(); err != nil {
		t.Fatalf("step returned error: %v", err)
	}
	if injected {
		t.Error("idle reading should not reach the injector")
	}
}

func TestStepPropagatesReadError(t *testing.T) {
	setupLoopState(t, translator.ModeRelative)

	origRead := devReadSample
	t.Cleanup(func() { devReadSample = origRead })

	wantErr := errors.New("port gone")
	devReadSample = func() (protocol.RawSample, error) {
		return protocol.RawSample{}, wantErr
	}

	if err := step(); !errors.Is(err, wantErr) {
		t.Errorf("step error = %v, want %v", err, wantErr)
	}
}

func TestInstallProfileRejectsDegenerate(t *testing.T) {
	p := testProfile()
	p.XInterval = p.CenterXInterval // zero-width ramps on X

	stateMu.Lock()
	before := profile
	stateMu.Unlock()

	if err := installProfile(p); err == nil {
		t.Fatal("installProfile should reject a degenerate profile")
	}

	stateMu.Lock()
	after := profile
	stateMu.Unlock()
	if before != after {
		t.Error("failed install must not replace the active profile")
	}
}

func TestRequestCalibrationDeduplicates(t *testing.T) {
	// Drain anything a previous test may have queued.
	select {
	case <-calibrateCh:
	default:
	}

	if err := requestCalibration(); err != nil {
		t.Fatalf("first request returned error: %v", err)
	}
	if err := requestCalibration(); !errors.Is(err, ErrCalibrationInProgress) {
		t.Errorf("second request error = %v, want ErrCalibrationInProgress", err)
	}

	<-calibrateCh
}

func TestLoadOrCalibrateUsesPersistedProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile")
	if err := testProfile().Save(profilePath); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	configPath := filepath.Join(dir, "config.json")
	body := `{"profilePath": ` + string(mustJSON(t, profilePath)) + `}`
	if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	c, err := config.NewFile(configPath)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	conf = c

	if err := loadOrCalibrate(); err != nil {
		t.Fatalf("loadOrCalibrate returned error: %v", err)
	}

	stateMu.Lock()
	defer stateMu.Unlock()
	if profile == nil || axisX == nil || axisY == nil || trans == nil {
		t.Error("loadOrCalibrate must install the profile and translator")
	}
}

func mustJSON(t *testing.T, s string) []byte {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
