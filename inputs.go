package gpt_pairs

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/yargevad/filepathx"
)

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` files, returning a
// slice of PathInfo.
func GlobTexts(dirPath string) (pathInfos []PathInfo, err error) {
	textPaths, err := filepathx.Glob(dirPath + "/**/*.txt")
	if err != nil {
		return nil, err
	}
	if len(textPaths) == 0 {
		return nil, fmt.Errorf("%s does not contain any .txt files",
			dirPath)
	}
	pathInfos = make([]PathInfo, 0, len(textPaths))
	for _, textPath := range textPaths {
		stat, statErr := os.Stat(textPath)
		if statErr != nil {
			return nil, statErr
		} else if stat.IsDir() {
			continue
		}
		pathInfos = append(pathInfos, PathInfo{
			Path:    textPath,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
		})
	}
	return pathInfos, nil
}

func SortPathInfoBySize(pathInfos []PathInfo, ascending bool) {
	sort.SliceStable(pathInfos, func(i, j int) bool {
		if ascending {
			return pathInfos[i].Size < pathInfos[j].Size
		}
		return pathInfos[i].Size > pathInfos[j].Size
	})
}

func SortPathInfoByPath(pathInfos []PathInfo, ascending bool) {
	sort.SliceStable(pathInfos, func(i, j int) bool {
		if ascending {
			return pathInfos[i].Path < pathInfos[j].Path
		}
		return pathInfos[i].Path > pathInfos[j].Path
	})
}

// ReorderPathInfos sorts in place per `order`: name_ascending,
// name_descending, size_ascending, size_descending or none.
func ReorderPathInfos(pathInfos []PathInfo, order string) error {
	switch order {
	case "", "name_ascending":
		SortPathInfoByPath(pathInfos, true)
	case "name_descending":
		SortPathInfoByPath(pathInfos, false)
	case "size_ascending":
		SortPathInfoBySize(pathInfos, true)
	case "size_descending":
		SortPathInfoBySize(pathInfos, false)
	case "none":
	default:
		return fmt.Errorf("invalid reorder specification `%s`", order)
	}
	return nil
}

// ExpandInputs
// Replaces every directory in inputs with the `.txt` files below it,
// ordered per `order`. Plain files are kept in place and must exist.
func ExpandInputs(inputs []string, order string) ([]string, error) {
	paths := make([]string, 0, len(inputs))
	for _, input := range inputs {
		stat, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			paths = append(paths, input)
			continue
		}
		pathInfos, err := GlobTexts(input)
		if err != nil {
			return nil, err
		}
		if err = ReorderPathInfos(pathInfos, order); err != nil {
			return nil, err
		}
		for _, pathInfo := range pathInfos {
			paths = append(paths, pathInfo.Path)
		}
	}
	return paths, nil
}
