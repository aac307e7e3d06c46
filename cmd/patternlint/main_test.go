package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/issue"
)

func TestExceeds(t *testing.T) {
	issues := []issue.Issue{{Severity: issue.Low}, {Severity: issue.High}}
	var testCases = []struct {
		description string
		failOn      string
		expect      bool
		expectErr   bool
	}{
		{description: "disabled", failOn: "none"},
		{description: "empty", failOn: ""},
		{description: "critical not reached", failOn: "critical"},
		{description: "high reached", failOn: "high", expect: true},
		{description: "low reached", failOn: "LOW", expect: true},
		{description: "unknown", failOn: "severe", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			threshold, err := parseFailOn(testCase.failOn)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, exceeds(issues, threshold))
		})
	}
}

func TestColorEnabled(t *testing.T) {
	var testCases = []struct {
		description string
		mode        string
		expect      bool
		expectErr   bool
	}{
		{description: "on", mode: "on", expect: true},
		{description: "off", mode: "off"},
		{description: "auto without terminal", mode: "auto"},
		{description: "unknown", mode: "sometimes", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := colorEnabled(testCase.mode, nil)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestWriteConfig(t *testing.T) {
	var testCases = []struct {
		description string
		format      string
		extension   string
	}{
		{description: "yaml", format: "yaml", extension: ".yaml"},
		{description: "toml", format: "toml", extension: ".toml"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			buffer := &bytes.Buffer{}
			require.NoError(t, writeConfig(buffer, testCase.format, config.Default()))
			decoded, err := config.Decode(testCase.extension, buffer.Bytes())
			require.NoError(t, err)
			assert.Equal(t, config.Default(), decoded)
		})
	}
	assert.Error(t, writeConfig(&bytes.Buffer{}, "xml", config.Default()))
}
