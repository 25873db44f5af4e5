package emojiextract

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeSource is an in-memory Source.
type fakeSource struct {
	names   []string
	cmap    map[rune]string
	strikes map[int]map[string]Bitmap
	err     error // returned by Bitmap for every existing glyph when set

	calls []int // strike sizes passed to Bitmap
}

func (f *fakeSource) GlyphNames() []string { return f.names }

func (f *fakeSource) Lookup(r rune) (string, bool) {
	name, ok := f.cmap[r]
	return name, ok
}

func (f *fakeSource) StrikeSizes() []int {
	sizes := make([]int, 0, len(f.strikes))
	for size := range f.strikes {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

func (f *fakeSource) Bitmap(size int, glyph string) (Bitmap, error) {
	f.calls = append(f.calls, size)
	bm, ok := f.strikes[size][glyph]
	if !ok {
		return Bitmap{}, ErrNotInStrike
	}
	if f.err != nil {
		return Bitmap{}, f.err
	}
	return bm, nil
}

// listFiles returns the files under dir as slash separated relative paths.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir(%s) error = %v", dir, err)
	}
	sort.Strings(files)
	return files
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func TestExtractor_Run_EndToEnd(t *testing.T) {
	src := &fakeSource{
		names: []string{"u1F389", "u2705"},
		strikes: map[int]map[string]Bitmap{
			32: {"u1F389": {Data: []byte("A"), Format: "png "}},
			64: {"u2705": {Data: []byte("B"), Format: "png "}},
		},
	}
	out := t.TempDir()

	report, err := New(src,
		WithOutputDir(out),
		WithSizes(32, 64),
		WithSpecs(
			Spec{Name: "party", Codepoints: []rune{0x1F389}},
			Spec{Name: "checkmark", Codepoints: []rune{0x2705}},
		),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"32/party.png", "64/checkmark.png"}, listFiles(t, out)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(out, "32", "party.png")); got != "A" {
		t.Errorf("32/party.png = %q, want \"A\"", got)
	}
	if got := readFile(t, filepath.Join(out, "64", "checkmark.png")); got != "B" {
		t.Errorf("64/checkmark.png = %q, want \"B\"", got)
	}

	if diff := cmp.Diff([]string{"party", "checkmark"}, report.Found); diff != "" {
		t.Errorf("Found mismatch (-want +got):\n%s", diff)
	}
	if len(report.NotFound) != 0 {
		t.Errorf("NotFound = %v, want none", report.NotFound)
	}
	if report.Extracted() != 2 {
		t.Errorf("Extracted() = %d, want 2", report.Extracted())
	}

	wantSkipped := []Skip{
		{Name: "party", Glyph: "u1F389", Size: 64, StrikeSize: 64, Reason: SkipNotInStrike},
		{Name: "checkmark", Glyph: "u2705", Size: 32, StrikeSize: 32, Reason: SkipNotInStrike},
	}
	if diff := cmp.Diff(wantSkipped, report.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_Run_ExactStrikePreferred(t *testing.T) {
	src := &fakeSource{
		names: []string{"u1F480"},
		strikes: map[int]map[string]Bitmap{
			40: {"u1F480": {Data: []byte("40")}},
			48: {"u1F480": {Data: []byte("48")}},
			64: {"u1F480": {Data: []byte("64")}},
		},
	}
	out := t.TempDir()

	_, err := New(src,
		WithOutputDir(out),
		WithSizes(48),
		WithSpecs(Spec{Name: "skull", Codepoints: []rune{0x1F480}}),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]int{48}, src.calls); diff != "" {
		t.Errorf("strikes read mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(out, "48", "skull.png")); got != "48" {
		t.Errorf("48/skull.png = %q, want \"48\"", got)
	}
}

func TestExtractor_Run_NearestStrike(t *testing.T) {
	src := &fakeSource{
		names: []string{"u1F3AF"},
		strikes: map[int]map[string]Bitmap{
			20:  {"u1F3AF": {Data: []byte("20")}},
			40:  {"u1F3AF": {Data: []byte("40")}},
			96:  {"u1F3AF": {Data: []byte("96")}},
			160: {"u1F3AF": {Data: []byte("160")}},
		},
	}
	out := t.TempDir()

	report, err := New(src,
		WithOutputDir(out),
		WithSizes(32, 64, 160),
		WithSpecs(Spec{Name: "target", Codepoints: []rune{0x1F3AF}}),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 32 -> 40 (8 away), 64 -> 40 (24 away, 96 is 32 away), 160 exact.
	want := map[string]string{
		"32/target.png":  "40",
		"64/target.png":  "40",
		"160/target.png": "160",
	}
	for rel, content := range want {
		if got := readFile(t, filepath.Join(out, filepath.FromSlash(rel))); got != content {
			t.Errorf("%s = %q, want %q", rel, got, content)
		}
	}

	for _, a := range report.Written {
		if a.Size == 32 && a.StrikeSize != 40 {
			t.Errorf("artifact %+v: StrikeSize = %d, want 40", a, a.StrikeSize)
		}
	}
}

func TestExtractor_Run_EmptyDataSkipped(t *testing.T) {
	src := &fakeSource{
		names: []string{"u274C", "u1F4AC"},
		strikes: map[int]map[string]Bitmap{
			32: {
				"u274C":  {Data: nil},
				"u1F4AC": {Data: []byte("speech")},
			},
		},
	}
	out := t.TempDir()

	report, err := New(src,
		WithOutputDir(out),
		WithSizes(32),
		WithSpecs(
			Spec{Name: "cross", Codepoints: []rune{0x274C}},
			Spec{Name: "speech", Codepoints: []rune{0x1F4AC}},
		),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "32", "cross.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cross.png exists or stat failed unexpectedly: %v", err)
	}
	if got := readFile(t, filepath.Join(out, "32", "speech.png")); got != "speech" {
		t.Errorf("speech.png = %q, want \"speech\"", got)
	}

	if len(report.Skipped) != 1 || report.Skipped[0].Reason != SkipEmptyData {
		t.Errorf("Skipped = %+v, want one SkipEmptyData", report.Skipped)
	}
	if diff := cmp.Diff([]string{"cross", "speech"}, report.Found); diff != "" {
		t.Errorf("Found mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_Run_NotFoundContinues(t *testing.T) {
	src := &fakeSource{
		names:   []string{"u1F4F1"},
		strikes: map[int]map[string]Bitmap{64: {"u1F4F1": {Data: []byte("phone")}}},
	}
	out := t.TempDir()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	report, err := New(src,
		WithOutputDir(out),
		WithSizes(64),
		WithLogger(logger),
		WithSpecs(
			Spec{Name: "anxious", Codepoints: []rune{0x1F630}},
			Spec{Name: "phone", Codepoints: []rune{0x1F4F1}},
		),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"anxious"}, report.NotFound); diff != "" {
		t.Errorf("NotFound mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"phone"}, report.Found); diff != "" {
		t.Errorf("Found mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"64/phone.png"}, listFiles(t, out)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "emoji not found") {
		t.Errorf("log output does not mention the missing emoji:\n%s", logs.String())
	}
}

func TestExtractor_Run_OverwritesAndCreatesDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public", "emojis")
	if err := os.MkdirAll(filepath.Join(out, "32"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(out, "32", "party.png")
	if err := os.WriteFile(path, []byte("stale contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &fakeSource{
		names:   []string{"u1F389"},
		strikes: map[int]map[string]Bitmap{32: {"u1F389": {Data: []byte("fresh")}}},
	}
	_, err := New(src,
		WithOutputDir(out),
		WithSizes(32, 64, 160),
		WithSpecs(Spec{Name: "party", Codepoints: []rune{0x1F389}}),
	).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, path); got != "fresh" {
		t.Errorf("party.png = %q, want \"fresh\"", got)
	}
	for _, size := range []string{"32", "64", "160"} {
		info, err := os.Stat(filepath.Join(out, size))
		if err != nil || !info.IsDir() {
			t.Errorf("size directory %s missing: %v", size, err)
		}
	}
}

func TestExtractor_Run_DirsCreatedWhenNothingResolves(t *testing.T) {
	out := t.TempDir()
	src := &fakeSource{strikes: map[int]map[string]Bitmap{20: {}}}

	report, err := New(src, WithOutputDir(out), WithSizes(32, 64)).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var want []string
	for _, s := range DefaultSpecs() {
		want = append(want, s.Name)
	}
	if diff := cmp.Diff(want, report.NotFound); diff != "" {
		t.Errorf("NotFound mismatch (-want +got):\n%s", diff)
	}
	for _, size := range []string{"32", "64"} {
		if _, err := os.Stat(filepath.Join(out, size)); err != nil {
			t.Errorf("size directory %s missing: %v", size, err)
		}
	}
}

func TestExtractor_Run_Errors(t *testing.T) {
	spec := Spec{Name: "party", Codepoints: []rune{0x1F389}}

	t.Run("no sizes", func(t *testing.T) {
		src := &fakeSource{strikes: map[int]map[string]Bitmap{32: {}}}
		_, err := New(src, WithOutputDir(t.TempDir()), WithSizes()).Run()
		if !errors.Is(err, ErrNoSizes) {
			t.Errorf("Run() error = %v, want ErrNoSizes", err)
		}
	})

	t.Run("no strikes", func(t *testing.T) {
		src := &fakeSource{names: []string{"u1F389"}}
		_, err := New(src, WithOutputDir(t.TempDir()), WithSpecs(spec)).Run()
		if !errors.Is(err, ErrNoStrikes) {
			t.Errorf("Run() error = %v, want ErrNoStrikes", err)
		}
	})

	t.Run("malformed glyph", func(t *testing.T) {
		errBad := errors.New("bad record")
		src := &fakeSource{
			names:   []string{"u1F389"},
			strikes: map[int]map[string]Bitmap{32: {"u1F389": {Data: []byte("A")}}},
			err:     errBad,
		}
		_, err := New(src, WithOutputDir(t.TempDir()), WithSizes(32), WithSpecs(spec)).Run()
		if !errors.Is(err, errBad) {
			t.Errorf("Run() error = %v, want wrapped errBad", err)
		}
	})

	t.Run("output is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		src := &fakeSource{strikes: map[int]map[string]Bitmap{32: {}}}
		if _, err := New(src, WithOutputDir(file)).Run(); err == nil {
			t.Error("Run() with a file as output dir should return error")
		}
	})
}

func TestExtractor_OutputPath(t *testing.T) {
	x := New(&fakeSource{}, WithOutputDir("public/emojis"))
	want := filepath.Join("public/emojis", "160", "warning.png")
	if got := x.OutputPath("warning", 160); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestSkipReason_String(t *testing.T) {
	got := []string{SkipNotInStrike.String(), SkipEmptyData.String(), SkipReason(9).String()}
	want := []string{"not in strike", "empty image data", "unknown"}
	if !slices.Equal(got, want) {
		t.Errorf("SkipReason strings = %v, want %v", got, want)
	}
}
