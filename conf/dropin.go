package conf

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DropInExt is the file extension for drop-in files.
const DropInExt = ".conf"

// readDir is used to read the contents of a directory. It's here for
// unit-testing purposes and nomally points to os.ReadDir.
var readDir = os.ReadDir

// SearchDropinFiles searches for drop-in files in a set of search
// directories. `searchPath` is ordered by priority with lowest-priority
// first. That means that a drop-in file found in a latter directory will
// overwrite any drop-in file with the same name of a previous directory.
// For example, if the searchPath would equal "/usr/lib/app", "/etc/app"
// then /etc/app/server.conf.d/10-overwrite.conf would overwrite
// /usr/lib/app/server.conf.d/10-overwrite.conf. The result is sorted by
// file name.
func SearchDropinFiles(configName string, searchPath []string) ([]string, error) {
	files := make(map[string]string)

	for _, path := range searchPath {
		for _, sp := range DropInSearchPaths(configName, path) {
			entries, err := readDir(sp)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, err
			}

			for _, e := range entries {
				n := e.Name()
				if !e.IsDir() && strings.HasSuffix(n, DropInExt) {
					files[n] = filepath.Join(sp, n)
				}
			}
		}
	}

	order := make([]string, 0, len(files))
	for name := range files {
		order = append(order, name)
	}
	sort.Strings(order)

	result := make([]string, len(order))
	for idx, name := range order {
		result[idx] = files[name]
	}

	return result, nil
}

// DropInSearchPaths returns the directories that are checked for drop-in
// files of configName inside rootDir. For "server.conf" these are
// <rootDir>/conf.d, shared by all files with the same extension, and
// <rootDir>/server.conf.d. The returned paths are sorted by priority
// with the lowest priority first.
func DropInSearchPaths(configName string, rootDir string) []string {
	var paths []string
	base := filepath.Base(configName)
	ext := filepath.Ext(base)

	if len(ext) > 1 && ext != base {
		paths = append(paths, filepath.Join(rootDir, strings.TrimPrefix(ext, ".")+".d"))
	}

	return append(paths, filepath.Join(rootDir, base+".d"))
}
