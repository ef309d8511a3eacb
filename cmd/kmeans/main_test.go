package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `name,x,y
a,0,0
b,0,1
c,10,0
d,10,1
`

func writeTable(t *testing.T, name string, gz bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	data := []byte(table)
	if gz {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		data = buf.Bytes()
	}
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRun(t *testing.T) {
	path := writeTable(t, "points.csv.gz", true)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{
		"-input", path, "-k", "2", "-columns", "x,y",
		"-seed", "1", "-restarts", "10", "-labels",
	}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "status: converged")
	assert.Contains(t, out, "inertia: 1\n")
	assert.Contains(t, out, "seed: ")
	assert.Contains(t, out, "cluster\tsize\tx\ty\n")

	labels := strings.Split(strings.TrimSpace(out[strings.Index(out, "labels:\n")+len("labels:\n"):]), "\n")
	require.Len(t, labels, 4)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[2], labels[3])
	assert.NotEqual(t, labels[0], labels[2])
	assert.Contains(t, stderr.String(), "clustering completed")
}

func TestRun_JSONLogs(t *testing.T) {
	path := writeTable(t, "points.csv", false)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{
		"-input", path, "-k", "1", "-columns", "x", "-log", "json", "-empty", "keep",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "inertia: 100\n")
	assert.Contains(t, stderr.String(), `"msg":"clustering completed"`)
}

func TestRun_Errors(t *testing.T) {
	path := writeTable(t, "points.csv", false)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"-k", "2"}},
		{"missing k", []string{"-input", path}},
		{"bad policy", []string{"-input", path, "-k", "2", "-empty", "drop"}},
		{"bad log format", []string{"-input", path, "-k", "2", "-log", "xml"}},
		{"bad source", []string{"-input", path, "-k", "2", "-source", "ftp"}},
		{"s3 without bucket", []string{"-input", path, "-k", "2", "-source", "s3"}},
		{"missing file", []string{"-input", path + ".nope", "-k", "2"}},
		{"text column", []string{"-input", path, "-k", "2"}},
		{"k too large", []string{"-input", path, "-k", "5", "-columns", "x,y"}},
		{"bad seed", []string{"-input", path, "-k", "2", "-seed", "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Error(t, err)
		})
	}
}
