package settings

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Overrides carries caller-supplied values that win over every configuration
// file. Entries with a nil value mean "not provided" and are skipped, so CLI
// layers can pass their full flag set without masking file values.
type Overrides map[string]any

type loader struct {
	logger *zap.Logger
}

// Option configures a Load call.
type Option func(*loader)

// WithLogger routes loader warnings to the given logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Load builds a T from an ordered list of YAML files plus overrides.
//
// Files are merged in order, later files winning, and a warning is logged
// whenever a file re-supplies keys an earlier file already set. Overrides win
// over every file. Keys that do not match a schema field are dropped. After
// merging, time-like fields are coerced from their string and numeric
// spellings, and every non-pointer field must be populated or Load fails with
// *MissingParamsError naming all unpopulated fields. File read and parse
// failures are returned to the caller with their cause wrapped.
func Load[T any](paths []string, overrides Overrides, opts ...Option) (T, error) {
	var zero T

	l := loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&l)
	}

	fields, err := schemaFields(reflect.TypeOf(zero))
	if err != nil {
		return zero, err
	}

	merged := make(map[string]any)
	for _, path := range paths {
		if err := l.mergeFile(merged, fields, path); err != nil {
			return zero, err
		}
	}

	for key, value := range overrides {
		if value == nil {
			continue
		}
		if _, ok := fields[key]; !ok {
			continue
		}
		merged[key] = value
	}

	if err := coerceTimeFields(merged, fields); err != nil {
		return zero, err
	}

	var missing []string
	for name, field := range fields {
		if field.optional {
			continue
		}
		if _, ok := merged[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return zero, &MissingParamsError{Fields: missing}
	}

	out := zero
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "yaml",
	})
	if err != nil {
		return zero, fmt.Errorf("build settings decoder: %w", err)
	}
	if err := decoder.Decode(merged); err != nil {
		return zero, fmt.Errorf("decode settings: %w", err)
	}
	return out, nil
}

type fieldInfo struct {
	typ      reflect.Type
	optional bool
}

// schemaFields derives the key-to-field mapping from the schema struct.
// Pointer fields are optional; everything else must be populated.
func schemaFields(t reflect.Type) (map[string]fieldInfo, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	fields := make(map[string]fieldInfo, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		fields[name] = fieldInfo{
			typ:      f.Type,
			optional: f.Type.Kind() == reflect.Pointer,
		}
	}
	return fields, nil
}

// fieldName resolves the configuration key for a struct field from its yaml
// tag, falling back to the lower-cased field name.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("yaml")
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

// mergeFile reads one YAML file and folds its recognized keys into the
// accumulator. Collisions with earlier files are reported once per file.
func (l loader) mergeFile(merged map[string]any, fields map[string]fieldInfo, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}

	var content map[string]any
	if err := yaml.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}

	var duplicated []string
	for key, value := range content {
		if _, ok := fields[key]; !ok {
			continue
		}
		if _, seen := merged[key]; seen {
			duplicated = append(duplicated, key)
		}
		merged[key] = value
	}

	if len(duplicated) > 0 {
		sort.Strings(duplicated)
		l.logger.Warn("duplicate settings across config files, last value wins",
			zap.String("file", path),
			zap.Strings("keys", duplicated),
		)
	}
	return nil
}

// coerceTimeFields rewrites accumulator values whose target field type has a
// registered coercion. Pointer fields coerce through their element type.
func coerceTimeFields(merged map[string]any, fields map[string]fieldInfo) error {
	for name, field := range fields {
		value, ok := merged[name]
		if !ok || value == nil {
			continue
		}

		typ := field.typ
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		coerce, ok := coercers[typ]
		if !ok {
			continue
		}

		coerced, err := coerce(value)
		if err != nil {
			return fmt.Errorf("settings field %s: %w", name, err)
		}
		merged[name] = coerced
	}
	return nil
}
