package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Team2502/colordetect/pkg/utils"
	"github.com/Team2502/colordetect/pkg/vision"
	"github.com/spf13/cobra"
)

var writeAnnotated bool

var imageCmd = &cobra.Command{
	Use:   "image <path|dir>",
	Short: "Detect classes in a still image or every image of a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		paths, err := imagePaths(args[0])
		if err != nil {
			return err
		}

		detector, err := vision.NewDetector(cfg.Morphology, cfg.Classes)
		if err != nil {
			return err
		}
		defer detector.Close()

		for _, path := range paths {
			results, out, err := detector.DetectImage(path, writeAnnotated)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				continue
			}

			fmt.Println(path)
			for _, r := range results {
				c := vision.CoordinatesOf(r.Boxes)
				fmt.Printf("  %-10s x=%v y=%v h=%v w=%v\n", r.Class, c.X, c.Y, c.H, c.W)
			}
			if out != "" {
				fmt.Printf("  written to %s\n", out)
			}
		}

		return nil
	},
}

func init() {
	imageCmd.Flags().BoolVarP(&writeAnnotated, "write", "w", false, "Save annotated copies next to the inputs")
}

//imagePaths returns path itself, or the images directly inside it when it is a directory
func imagePaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	names, err := utils.ListDir(path)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		if utils.IsImageFile(name) {
			paths = append(paths, filepath.Join(path, name))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no images in '%s'", path)
	}

	return paths, nil
}
