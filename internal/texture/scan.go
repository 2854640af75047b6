// Package texture bounds the resolution of texture images shipped next to an
// avatar scene file. The scene's own texture references are not rewritten;
// that side stays with the host engine.
package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tga":  true,
}

// Discover finds candidate texture images for a scene file: the scene's own
// directory, a textures/ subdirectory, and the FBX-convention {base}.fbm
// directory. Non-recursive; returns sorted absolute-or-relative paths
// matching the input's form.
func Discover(scenePath string) []string {
	dir := filepath.Dir(scenePath)
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))

	searchDirs := []string{
		dir,
		filepath.Join(dir, "textures"),
		filepath.Join(dir, base+".fbm"),
	}

	seen := make(map[string]bool)
	var paths []string
	for _, d := range searchDirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			p := filepath.Join(d, e.Name())
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	sort.Strings(paths)
	return paths
}
