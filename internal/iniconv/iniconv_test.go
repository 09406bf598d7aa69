package iniconv_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/flake518/flake518/internal/iniconv"
	"github.com/flake518/flake518/internal/pyproject"
)

func TestWrite_RoundTrip(t *testing.T) {
	doc := pyproject.Document{
		"flake8": {
			"max-line-length": int64(100),
			"select":          "E1,E2",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, iniconv.Write(doc, &buf))

	parsed, err := ini.Load(buf.Bytes())
	require.NoError(t, err)

	section := parsed.Section("flake8")
	assert.Equal(t, 100, section.Key("max-line-length").MustInt())
	assert.Equal(t, "E1,E2", section.Key("select").String())
}

func TestWrite_SingleSectionHeader(t *testing.T) {
	doc := pyproject.Section{"max-line-length": int64(100)}.Wrap()

	var buf bytes.Buffer
	require.NoError(t, iniconv.Write(doc, &buf))

	parsed, err := ini.Load(buf.Bytes())
	require.NoError(t, err)

	// DEFAULT is ini.v1's implicit unnamed section.
	var names []string
	for _, s := range parsed.Sections() {
		if s.Name() != ini.DefaultSection {
			names = append(names, s.Name())
		}
	}
	assert.Equal(t, []string{"flake8"}, names)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "E501", "E501"},
		{"int64", int64(79), "79"},
		{"bool", true, "true"},
		{"float", 2.5, "2.5"},
		{"string_list", []any{"E501", "W503"}, "E501,W503"},
		{"int_list", []any{int64(1), int64(2)}, "1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, iniconv.FormatValue(tt.value))
		})
	}
}
