package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lu/internal/diag"
	"lu/internal/trace"
)

// ErrNoManifest is returned when no lu.toml is found above the start directory.
var ErrNoManifest = errors.New("no lu.toml found\nplease specify the file explicitly, e.g.:\n  lu run path/to/main.lu")

// Manifest is a loaded lu.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the lu.toml sections.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// DiagnosticsConfig holds defaults for the diagnostic flags.
type DiagnosticsConfig struct {
	FatalLevel string `toml:"fatal_level"`
	Max        int    `toml:"max"`
}

// TraceConfig holds defaults for the trace flags.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Load finds and decodes the manifest above startDir. ok is false when
// none exists.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates a manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, validate(path, cfg, meta)
}

// DecodeConfig is LoadConfig over in-memory text; name labels errors.
func DecodeConfig(name, text string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	return cfg, validate(name, cfg, meta)
}

func validate(path string, cfg Config, meta toml.MetaData) error {
	if !meta.IsDefined("package") {
		return fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("run") {
		return fmt.Errorf("%s: missing [run]", path)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return fmt.Errorf("%s: missing [run].main", path)
	}
	if meta.IsDefined("diagnostics", "fatal_level") {
		if _, err := diag.ParseSeverity(cfg.Diagnostics.FatalLevel); err != nil {
			return fmt.Errorf("%s: [diagnostics].fatal_level: %w", path, err)
		}
	}
	if cfg.Diagnostics.Max < 0 {
		return fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// MainPath resolves [run].main against the manifest root and checks it
// names an existing .lu file.
func (m *Manifest) MainPath() (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != ".lu" {
		return "", fmt.Errorf("%s: [run].main must be a .lu file", m.Path)
	}
	return mainPath, nil
}

// Template returns the lu.toml written by `lu init`.
func Template(name string) string {
	return fmt.Sprintf("[package]\nname = %q\n\n[run]\nmain = \"main.lu\"\n", name)
}
