package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/schema"
)

const (
	// ConfigFileName is the name of the default manifest file.
	ConfigFileName = "vroute.json"

	// DefaultLogLevel is the default router log level.
	DefaultLogLevel = "info"
)

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// manifestNames lists the files Load looks for, in order.
var manifestNames = []string{"vroute.json", "vroute.yaml", "vroute.yml", "vroute.toml"}

// Manifest is a declarative route table.
type Manifest struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Version is the manifest version.
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`

	// Router contains router construction settings.
	Router RouterConfig `json:"router,omitempty" yaml:"router,omitempty" toml:"router,omitempty"`

	// Defaults are merged into every route that leaves a field empty.
	Defaults RouteConfig `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`

	// Routes lists the routes in registration order.
	Routes []RouteConfig `json:"routes" yaml:"routes" toml:"routes"`

	// configPath stores the path where the manifest was loaded from.
	configPath string
}

// RouterConfig maps onto router.Option values.
type RouterConfig struct {
	// CanonicalPaths enables router.WithCanonicalPaths.
	CanonicalPaths bool `json:"canonicalPaths,omitempty" yaml:"canonicalPaths,omitempty" toml:"canonicalPaths,omitempty"`

	// StrictParams enables router.WithStrictParams.
	StrictParams bool `json:"strictParams,omitempty" yaml:"strictParams,omitempty" toml:"strictParams,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty" toml:"logLevel,omitempty"`
}

// RouteConfig is a single manifest route.
type RouteConfig struct {
	// Name is the route name. Required.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Path is the route pattern. Required.
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`

	// Component is an opaque component reference returned in the page.
	Component string `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`

	// Tags are static route metadata.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`

	// Query is an inline JSON Schema document for the route query.
	Query map[string]any `json:"query,omitempty" yaml:"query,omitempty" toml:"query,omitempty"`
}

// New creates a new Manifest with default values.
func New() *Manifest {
	return &Manifest{
		Version: "1",
		Router: RouterConfig{
			LogLevel: DefaultLogLevel,
		},
	}
}

// Load reads the manifest from the specified directory.
// It looks for vroute.json, vroute.yaml, vroute.yml and vroute.toml in
// that order.
func Load(dir string) (*Manifest, error) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E160").
		WithDetail("No route manifest found in " + dir).
		WithSuggestion("Create vroute.json with a \"routes\" list")
}

// LoadFile reads a manifest from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E160").
				WithDetail("No manifest at " + path)
		}
		return nil, errors.New("E161").Wrap(err)
	}

	m, err := Parse(data, format)
	if err != nil {
		if re, ok := err.(*errors.RouteError); ok {
			if re.Location != nil {
				re.Location.File = path
			} else {
				re.WithLocation(path, "")
			}
		}
		return nil, err
	}
	m.configPath = path
	return m, nil
}

// FormatOf returns the manifest format for a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New("E162").
			WithDetail("Cannot infer the manifest format of " + filepath.Base(path))
	}
}

// Parse decodes a manifest and applies defaults.
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}
	if err := decode(data, format, m); err != nil {
		return nil, errors.New("E161").
			WithDetail("Failed to parse " + string(format) + " manifest: " + err.Error()).
			WithSuggestion("Check that the manifest is valid " + strings.ToUpper(string(format)))
	}
	if err := m.applyDefaults(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decode(data []byte, format Format, v *Manifest) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatYAML:
		return yaml.UnmarshalWithOptions(data, v, yaml.DisallowUnknownField())
	case FormatTOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.Newf(errors.CategoryConfig, "unknown key %q", undecoded[0].String())
		}
		return nil
	default:
		return errors.New("E162").WithDetail("Unknown format " + string(format))
	}
}

// applyDefaults fills empty manifest fields from New() and empty route
// fields from Defaults.
func (m *Manifest) applyDefaults() error {
	if err := mergo.Merge(m, New()); err != nil {
		return errors.New("E161").Wrap(err)
	}
	for i := range m.Routes {
		rc := &m.Routes[i]
		// Merge adds missing tag keys; route tags win.
		if err := mergo.Merge(rc, RouteConfig{
			Component: m.Defaults.Component,
			Tags:      maps.Clone(m.Defaults.Tags),
		}); err != nil {
			return errors.New("E161").Wrap(err).WithLocation(m.configPath, rc.Name)
		}
		if rc.Query == nil {
			rc.Query = m.Defaults.Query
		}
	}
	return nil
}

// Validate checks the manifest for missing or duplicate route names and
// empty paths.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Routes))
	for i, rc := range m.Routes {
		switch {
		case rc.Name == "":
			return errors.New("E161").
				WithDetail("Route #" + itoa(i+1) + " has no name")
		case rc.Path == "":
			return errors.New("E161").
				WithDetail("Route has no path").
				WithLocation(m.configPath, rc.Name)
		case seen[rc.Name]:
			return errors.New("E161").
				WithDetail("Route name is declared twice").
				WithLocation(m.configPath, rc.Name)
		}
		seen[rc.Name] = true
	}
	if _, ok := logLevels[strings.ToLower(m.Router.LogLevel)]; !ok {
		return errors.New("E161").
			WithDetail("Unknown log level " + m.Router.LogLevel).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the configured slog level.
func (m *Manifest) LogLevel() slog.Level {
	return logLevels[strings.ToLower(m.Router.LogLevel)]
}

// HandlerFunc produces the handler for a manifest route.
type HandlerFunc func(rc RouteConfig) router.Handler

// StaticHandler returns a handler that declares the route's component and
// echoes its tags as page data.
func StaticHandler(rc RouteConfig) router.Handler {
	return func(*router.RequestContext) router.Page {
		return router.Page{Component: rc.Component, Data: maps.Clone(rc.Tags)}
	}
}

// RouteTable builds the router collection described by the manifest. A nil
// handler uses StaticHandler. Query schemas are compiled here; an invalid
// schema fails with E142.
func (m *Manifest) RouteTable(handler HandlerFunc) (router.Routes, error) {
	if handler == nil {
		handler = StaticHandler
	}

	routes := make(router.Routes, 0, len(m.Routes))
	for _, rc := range m.Routes {
		var opts []router.RouteOption
		if len(rc.Tags) > 0 {
			opts = append(opts, router.WithTags(flattenTags(rc.Tags)...))
		}
		if rc.Query != nil {
			s, err := compileQuery(rc.Query)
			if err != nil {
				return nil, errors.New("E142").
					WithDetail(err.Error()).
					WithLocation(m.configPath, rc.Name)
			}
			opts = append(opts, router.WithQuery(s))
		}
		routes = routes.Add(rc.Name, router.Define(rc.Path, handler(rc), opts...))
	}
	return routes, nil
}

// Options returns the router options the manifest enables.
func (m *Manifest) Options(logger *slog.Logger) []router.Option {
	var opts []router.Option
	if logger != nil {
		opts = append(opts, router.WithLogger(logger))
	}
	if m.Router.CanonicalPaths {
		opts = append(opts, router.WithCanonicalPaths())
	}
	if m.Router.StrictParams {
		opts = append(opts, router.WithStrictParams())
	}
	return opts
}

// Build compiles the manifest into a router.
func (m *Manifest) Build(handler HandlerFunc, opts ...router.Option) (*router.Router, error) {
	routes, err := m.RouteTable(handler)
	if err != nil {
		return nil, err
	}
	return router.Build(routes, opts...)
}

func compileQuery(doc map[string]any) (*schema.JSONSchema, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return schema.JSON(string(data))
}

// flattenTags renders tags as sorted key/value pairs.
func flattenTags(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, tags[k])
	}
	return kv
}

// Path returns the path where the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.configPath
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	if m.configPath == "" {
		return ""
	}
	return filepath.Dir(m.configPath)
}

// Exists checks if a manifest exists in the given directory.
func Exists(dir string) bool {
	for _, name := range manifestNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a manifest, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E160").
				WithDetail("No route manifest found in " + startDir + " or any parent directory").
				WithSuggestion("Create vroute.json with a \"routes\" list")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the manifest from the current working directory
// or the nearest parent that has one.
func LoadFromWorkingDir() (*Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
