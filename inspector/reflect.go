package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

var widgetByName = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Hints are the options of an inspect tag.
type Hints struct {
	Format string  // fmt verb for the value, "" for the default
	Max    float64 // full scale of a bar, 1 unless set
	Name   string  // display name overriding the field name
}

// Field is one displayable struct field.
type Field struct {
	Name   string
	Value  any
	Widget Widget
	Hints  Hints
}

// ParseTag parses `inspect:"widget[,key:value...]"` with keys fmt, max and name,
// for example `inspect:"bar,max:1"` or `inspect:"label,fmt:%.1f"`.
// Unknown widgets and keys are ignored.
func ParseTag(tag string) (Widget, Hints) {
	hints := Hints{Max: 1}
	head, rest, _ := strings.Cut(tag, ",")
	widget := widgetByName[strings.TrimSpace(head)]

	for _, opt := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			hints.Format = val
		case "name":
			hints.Name = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				hints.Max = m
			}
		}
	}
	return widget, hints
}

// ExtractFields lists the exported, non-skipped fields of a struct or struct pointer.
func ExtractFields(v any) []Field {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, hints := ParseTag(sf.Tag.Get("inspect"))
		fv := rv.Field(i)
		switch widget {
		case WidgetSkip:
			continue
		case WidgetAuto:
			widget = WidgetLabel
			if fv.Kind() == reflect.Bool {
				widget = WidgetBool
			}
		}

		name := sf.Name
		if hints.Name != "" {
			name = hints.Name
		}
		fields = append(fields, Field{Name: name, Value: fv.Interface(), Widget: widget, Hints: hints})
	}
	return fields
}

// FormatValue renders value with format, or floats with two decimals and
// everything else with %v when format is empty.
func FormatValue(value any, format string) string {
	switch {
	case format != "":
		return fmt.Sprintf(format, value)
	case reflect.ValueOf(value).CanFloat():
		return strconv.FormatFloat(reflect.ValueOf(value).Float(), 'f', 2, 64)
	}
	return fmt.Sprint(value)
}

// Numeric converts integer and float values to float64.
func Numeric(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch {
	case rv.CanFloat():
		return rv.Float(), true
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	}
	return 0, false
}
