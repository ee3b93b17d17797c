// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, sub := range []string{"parse", "tokenize", "query", "dump", "batch"} {
		assert.Contains(t, output, sub)
	}
}

func TestParseCommand_OK(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "t.liquid")
	require.NoError(t, os.WriteFile(file, []byte("hello {{ $['x'] }}"), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"parse", "--file", file})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ok")
}

func TestParseCommand_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "t.liquid")
	require.NoError(t, os.WriteFile(file, []byte("{% if %}unclosed"), 0o644))

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"parse", "--file", file})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestQueryCommand_PrintsCanonicalForm(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"query", "--expr", "$.a.b"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.Contains(buf.String(), "a") && strings.Contains(buf.String(), "b"))
}

func TestBatchCommand_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.liquid")
	bad := filepath.Join(dir, "bad.liquid")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("{% if %}"), 0o644))

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"batch", good, bad})

	err := cmd.Execute()
	require.Error(t, err)
}
