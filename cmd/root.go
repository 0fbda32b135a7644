package main

import (
	"github.com/Team2502/colordetect/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	classes []string
)

// rootCmd runs the detection loop when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "colordetect",
	Short: "HSV color detection for the robot",
	Long: `Finds friendly bumpers, opponent bumpers and notes in camera frames by HSV thresholding
and publishes their bounding boxes to the network table the robot reads.`,
	SilenceUsage: true,
	RunE:         runDetection,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml or $HOME/.colordetect/config.yaml)")
	rootCmd.PersistentFlags().StringP("device", "d", "", "Camera index or video file, overrides camera.device")
	rootCmd.PersistentFlags().BoolP("gui", "g", false, "Show raw, mask and highlighted windows, overrides display.enabled")
	rootCmd.PersistentFlags().StringSliceVar(&classes, "class", nil, "Only detect these classes (repeatable)")

	rootCmd.AddCommand(runCmd, imageCmd, tableCmd)
}

//loadConfig reads the configuration with command line overrides applied
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New(cfgFile)

	if f := cmd.Flags().Lookup("device"); f != nil && f.Changed {
		v.Set("camera.device", f.Value.String())
	}

	if f := cmd.Flags().Lookup("gui"); f != nil && f.Changed {
		v.Set("display.enabled", f.Value.String() == "true")
	}

	cfg, err := config.Load(v, cfgFile != "")
	if err != nil {
		return nil, err
	}

	if err := cfg.Filter(classes); err != nil {
		return nil, err
	}

	return cfg, nil
}
