package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogueCSV = `id,name,current_stock,average_daily_sales,supplier_lead_time,minimum_reorder_quantity,cost_per_unit,criticality
a,Alpha,10,2,3,5,1.5,high
b,Bravo,500,1,2,0,0,medium
p1,Spiky,20,2,2,0,0.25,low
`

func writeCatalogue(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogueCSV), 0o644))
	return path
}

func TestRunReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runReport(context.Background(), &buf, reportOptions{File: writeCatalogue(t)}))

	out := buf.String()
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Spiky")
	assert.Contains(t, out, "$165.00")
	assert.Contains(t, out, "Reorder report generated successfully!")
}

func TestRunReport_SimulationByName(t *testing.T) {
	var buf bytes.Buffer
	err := runReport(context.Background(), &buf, reportOptions{
		File:            writeCatalogue(t),
		SimulateProduct: "spiky",
		Multiplier:      5,
		CSV:             true,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Simulated Sales")
	assert.True(t, strings.HasPrefix(lines[2], "p1,Spiky,"))
	assert.Contains(t, lines[2], "Demand Spike Simulation")
}

func TestRunReport_UnknownSimulationProduct(t *testing.T) {
	err := runReport(context.Background(), io.Discard, reportOptions{File: writeCatalogue(t), SimulateProduct: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	require.NoError(t, app.Run([]string{"reorder", "report", "--file", writeCatalogue(t), "--csv"}))
	assert.True(t, strings.HasPrefix(buf.String(), "Product ID,"))

	assert.Error(t, app.Run([]string{"reorder", "report"}))
}

func TestResolveObjectKey(t *testing.T) {
	cases := []struct {
		prefix, override, want string
	}{
		{"", "/catalogue.csv", "catalogue.csv"},
		{"imports/", "catalogue.csv", "imports/catalogue.csv"},
		{"imports", "imports/catalogue.csv", "imports/catalogue.csv"},
		{"imports", "", "imports"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolveObjectKey(tc.prefix, tc.override), tc)
	}
}

func TestObjectRelativePath(t *testing.T) {
	assert.Equal(t, "2026/a.csv", objectRelativePath("imports/", "imports/2026/a.csv"))
	assert.Equal(t, "a.csv", objectRelativePath("", "a.csv"))
}

type fakeObjects struct {
	objects map[string]string
}

func (f *fakeObjects) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, body := range f.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(body))})
		}
	}
	return out, nil
}

func (f *fakeObjects) DownloadObject(ctx context.Context, key string, destPath string) error {
	return os.WriteFile(destPath, []byte(f.objects[key]), 0o644)
}

func (f *fakeObjects) UploadObject(ctx context.Context, key string, data []byte) error {
	f.objects[key] = string(data)
	return nil
}

func TestDownloadObjects(t *testing.T) {
	client := &fakeObjects{objects: map[string]string{
		"imports/b.csv":      catalogueCSV,
		"imports/a.xlsx":     "binary",
		"imports/readme.txt": "skip",
	}}
	dir := t.TempDir()

	paths, err := downloadObjects(context.Background(), client, "imports", "", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv")}, paths)

	_, err = downloadObjects(context.Background(), client, "empty/", "", dir)
	assert.Error(t, err)
}
