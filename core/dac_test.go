package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type stubSPI struct {
	frames [][]byte
	err    error
}

func (s *stubSPI) Tx(w, r []byte) error {
	if s.err != nil {
		return s.err
	}
	if len(w) > 0 {
		frame := make([]byte, len(w))
		copy(frame, w)
		s.frames = append(s.frames, frame)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (s *stubSPI) Transfer(b byte) (byte, error) {
	return 0, s.err
}

type stubDAC struct {
	puts        int
	lastChannel uint8
	lastValue   uint16
	err         error
}

func (s *stubDAC) Put(channel uint8, value uint16) error {
	s.puts++
	s.lastChannel, s.lastValue = channel, value
	return s.err
}

// dacRuntime wires a runtime with both converters stubbed.
func dacRuntime() (*Runtime, *stubSPI, *stubDAC, *bytes.Buffer) {
	rt, buf := testRuntime()
	bus := &stubSPI{}
	dac := &stubDAC{}
	rt.ExtDAC = NewExternalDAC(bus)
	rt.DAC = dac
	return rt, bus, dac, buf
}

func TestExternalDACFrames(t *testing.T) {
	bus := &stubSPI{}
	d := NewExternalDAC(bus)

	cases := []struct {
		channel uint16
		value   uint16
		frame   []byte
	}{
		{0, 100, []byte{0x10, 0x64}},
		{1, 0, []byte{0x50, 0x00}},
		{2, 0x800, []byte{0x98, 0x00}},
		{3, 0xfff, []byte{0xDF, 0xFF}},
	}
	for _, c := range cases {
		if !d.Write(c.channel, c.value) {
			t.Fatalf("Write(%d, %d) failed", c.channel, c.value)
		}
	}
	if len(bus.frames) != len(cases) {
		t.Fatalf("expected %d frames, got %d", len(cases), len(bus.frames))
	}
	for i, c := range cases {
		if !bytes.Equal(bus.frames[i], c.frame) {
			t.Errorf("Write(%d, %d) frame = % X, want % X", c.channel, c.value, bus.frames[i], c.frame)
		}
	}
}

func TestExternalDACRejects(t *testing.T) {
	bus := &stubSPI{}
	d := NewExternalDAC(bus)

	if d.Write(4, 0) {
		t.Error("channel 4 should be rejected")
	}
	if d.Write(0, 0x1000) {
		t.Error("value 0x1000 should be rejected")
	}
	if len(bus.frames) != 0 {
		t.Errorf("rejected writes produced %d frames", len(bus.frames))
	}

	if (&ExternalDAC{}).Write(0, 0) {
		t.Error("write with no bus should fail")
	}
	var nild *ExternalDAC
	if nild.Write(0, 0) {
		t.Error("write on nil converter should fail")
	}
}

func TestExternalDACBusError(t *testing.T) {
	d := NewExternalDAC(&stubSPI{err: errors.New("bus stuck")})
	if d.Write(0, 100) {
		t.Error("bus error should fail the write")
	}
}

func TestExternalDACReset(t *testing.T) {
	bus := &stubSPI{}
	d := NewExternalDAC(bus)

	if !d.Reset() {
		t.Fatal("reset failed")
	}
	want := [][]byte{{0x10, 0x00}, {0x50, 0x00}, {0x90, 0x00}, {0xD0, 0x00}}
	if len(bus.frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(bus.frames))
	}
	for i := range want {
		if !bytes.Equal(bus.frames[i], want[i]) {
			t.Errorf("reset frame %d = % X, want % X", i, bus.frames[i], want[i])
		}
	}
}

func TestDacInitOnce(t *testing.T) {
	rt, bus, dac, _ := dacRuntime()

	// First family command brings every output to 0v, then runs.
	if !rt.Exec(fields("dac write"), []string{"0", "100"}) {
		t.Fatal("dac write failed")
	}
	if len(bus.frames) != 5 {
		t.Fatalf("expected 4 reset frames plus 1 write, got %d", len(bus.frames))
	}
	if dac.puts != 1 || dac.lastValue != 0 {
		t.Errorf("expected one internal reset put, got %d (last value %d)", dac.puts, dac.lastValue)
	}

	// Second command must not re-run the bring-up.
	if !rt.Exec(fields("dac write"), []string{"1", "200"}) {
		t.Fatal("second dac write failed")
	}
	if len(bus.frames) != 6 {
		t.Errorf("expected 6 frames after second write, got %d", len(bus.frames))
	}
	if dac.puts != 1 {
		t.Errorf("bring-up ran again: %d puts", dac.puts)
	}
}

func TestDacWriteExternal(t *testing.T) {
	rt, bus, _, _ := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	bus.frames = nil

	if !rt.Exec(fields("dac write"), []string{"3", "0xfff"}) {
		t.Fatal("dac write failed")
	}
	if len(bus.frames) != 1 || !bytes.Equal(bus.frames[0], []byte{0xDF, 0xFF}) {
		t.Errorf("frames = % X, want one DF FF", bus.frames)
	}
}

func TestDacWriteInternal(t *testing.T) {
	rt, _, dac, _ := dacRuntime()

	if !rt.Exec(fields("dac write"), []string{"4", "2048"}) {
		t.Fatal("dac write to channel 4 failed")
	}
	if dac.lastChannel != 0 || dac.lastValue != 2048 {
		t.Errorf("internal put %d=%d, want channel 0 value 2048", dac.lastChannel, dac.lastValue)
	}
}

func TestDacWriteInternalNoDriver(t *testing.T) {
	rt, buf := testRuntime()
	rt.ExtDAC = NewExternalDAC(&stubSPI{})

	if rt.Exec(fields("dac write"), []string{"4", "100"}) {
		t.Fatal("channel 4 with no internal driver should fail")
	}
	if !strings.Contains(buf.String(), "E:dac driver not configured") {
		t.Errorf("missing error line in %q", buf.String())
	}
}

func TestDacWriteInternalFailure(t *testing.T) {
	rt, _, dac, buf := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	dac.err = errors.New("wedged")

	if rt.Exec(fields("dac write"), []string{"4", "100"}) {
		t.Fatal("internal put failure should fail the command")
	}
	if !strings.Contains(buf.String(), "E:dac write failed: wedged") {
		t.Errorf("missing error line in %q", buf.String())
	}
}

func TestDacWriteInvalidChannel(t *testing.T) {
	rt, bus, _, buf := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	before := len(bus.frames)
	buf.Reset()

	for _, ch := range []string{"7", "-1", "bogus"} {
		if rt.Exec(fields("dac write"), []string{ch, "100"}) {
			t.Errorf("channel %q should be rejected", ch)
		}
	}
	if len(bus.frames) != before {
		t.Errorf("rejected channels produced bus traffic: %d new frames", len(bus.frames)-before)
	}
	if !strings.Contains(buf.String(), "E:invalid channel") {
		t.Errorf("missing error line in %q", buf.String())
	}
}

func TestDacWriteInvalidValue(t *testing.T) {
	rt, bus, _, buf := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	before := len(bus.frames)

	for _, v := range []string{"bogus", "-1", "70000"} {
		if rt.Exec(fields("dac write"), []string{"0", v}) {
			t.Errorf("value %q should be rejected", v)
		}
	}
	if len(bus.frames) != before {
		t.Errorf("rejected values produced bus traffic: %d new frames", len(bus.frames)-before)
	}
	if !strings.Contains(buf.String(), "E:invalid value") {
		t.Errorf("missing error line in %q", buf.String())
	}
}

func TestDacWriteExternalOverflow(t *testing.T) {
	rt, bus, _, buf := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	before := len(bus.frames)
	buf.Reset()

	// 0x1fff fits the command range but not the external converter;
	// the rejection is silent apart from the transaction status.
	if rt.Exec(fields("dac write"), []string{"0", "0x1fff"}) {
		t.Fatal("oversize external value should fail")
	}
	if len(bus.frames) != before {
		t.Errorf("rejected value produced bus traffic")
	}
	want := "BEGIN:\r\nEND:ERROR\r\n"
	if got := buf.String(); got != want {
		t.Errorf("transaction = %q, want %q", got, want)
	}
}

func TestDacWriteHexValue(t *testing.T) {
	rt, bus, _, _ := dacRuntime()
	rt.Exec(fields("dac reset"), nil)
	bus.frames = nil

	if !rt.Exec(fields("dac write"), []string{"0", "0x64"}) {
		t.Fatal("hex value write failed")
	}
	if len(bus.frames) != 1 || !bytes.Equal(bus.frames[0], []byte{0x10, 0x64}) {
		t.Errorf("frames = % X, want one 10 64", bus.frames)
	}
}

func TestDacWriteArity(t *testing.T) {
	rt, _, _, buf := dacRuntime()

	if rt.Exec(fields("dac write"), []string{"0"}) {
		t.Fatal("one data argument should fail")
	}
	if !strings.Contains(buf.String(), "E:expected 2 data arguments, got 1") {
		t.Errorf("missing error line in %q", buf.String())
	}
}

func TestDacReset(t *testing.T) {
	rt, bus, dac, _ := dacRuntime()

	if !rt.Exec(fields("dac reset"), nil) {
		t.Fatal("dac reset failed")
	}
	// Bring-up reset plus the explicit one.
	if len(bus.frames) != 8 {
		t.Errorf("expected 8 frames, got %d", len(bus.frames))
	}
	if dac.puts != 2 {
		t.Errorf("expected 2 internal puts, got %d", dac.puts)
	}
}

func TestDacTableShape(t *testing.T) {
	table := dacTable()
	want := []string{"help", "write", "reset"}
	if len(table) != len(want)+1 {
		t.Fatalf("expected %d entries plus sentinel, got %d", len(want), len(table))
	}
	for i, name := range want {
		if table[i].Name != name {
			t.Errorf("slot %d: expected %q, got %q", i, name, table[i].Name)
		}
		if table[i].Handler == nil {
			t.Errorf("slot %d (%s): nil handler", i, name)
		}
	}
	if !table[len(want)].zero() {
		t.Error("table is not sentinel-terminated")
	}
	if entry := table.Lookup("w"); entry == nil || entry.Name != "write" {
		t.Errorf("verb w did not resolve to write entry: %v", entry)
	}
}

func TestDacHelp(t *testing.T) {
	rt, _, _, buf := dacRuntime()

	if !rt.Exec(fields("dac help"), nil) {
		t.Fatal("dac help failed")
	}
	out := buf.String()
	if !strings.Contains(out, "#:DAC command help:") {
		t.Errorf("missing heading in %q", out)
	}
	for _, name := range []string{"help", "write", "reset"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q", name)
		}
	}
}

func TestDacUnknownSubcommand(t *testing.T) {
	rt, _, _, buf := dacRuntime()

	if rt.Exec(fields("dac bogus"), nil) {
		t.Fatal("unknown sub-command should fail")
	}
	if !strings.Contains(buf.String(), "E:bogus not implemented") {
		t.Errorf("missing error line in %q", buf.String())
	}
}
