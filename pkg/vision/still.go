package vision

import (
	"fmt"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

//AnnotatedPath returns where DetectImage writes the annotated copy of path
func AnnotatedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_detected" + ext
}

//DetectImage runs the detector on a still image. When write is true the annotated
//image is saved at AnnotatedPath(path) and that path is returned.
func (d *Detector) DetectImage(path string, write bool) ([]ClassResult, string, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return nil, "", fmt.Errorf("DetectImage: could not read image '%s'", path)
	}

	results, err := d.Detect(img, nil)
	if err != nil {
		return nil, "", err
	}

	if !write {
		return results, "", nil
	}

	d.Annotate(&img, results)
	outPath := AnnotatedPath(path)
	if ok := gocv.IMWrite(outPath, img); !ok {
		return results, "", fmt.Errorf("DetectImage: could not write '%s'", outPath)
	}

	return results, outPath, nil
}
