package optimize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPath derives the report path from the export path:
// {output_dir}/{output_base}.manifest.json.
func ManifestPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".manifest.json"
}

// WriteManifest writes the run report as indented JSON.
func WriteManifest(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
