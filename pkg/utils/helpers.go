package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a sorted list of files/ directories names in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if files, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, f := range files {
			names = append(names, f.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

//IsImageFile returns true if given path has one of ImageExtensions (case insensitive)
func IsImageFile(path string) bool {
	return InSlice(strings.ToLower(filepath.Ext(path)), ImageExtensions)
}
