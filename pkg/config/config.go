package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Team2502/colordetect/pkg/utils"
	"github.com/Team2502/colordetect/pkg/vision"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
)

//Table modes
const (
	TableServe  = "serve"
	TableRemote = "remote"
	TableNone   = "none"
)

type Config struct {
	Camera     CameraConfig
	Display    DisplayConfig
	Morphology vision.Morphology
	Table      TableConfig
	Record     RecordConfig
	Classes    []vision.ClassParams
}

type CameraConfig struct {
	Device          string
	MaxReadFailures int
}

type DisplayConfig struct {
	Enabled bool
	WaitMs  int
}

type TableConfig struct {
	Mode    string
	Listen  string
	Server  string
	Timeout time.Duration
}

type RecordConfig struct {
	Enabled bool
	Path    string
	Video   string //annotated video output, empty disables it
}

//rangeConfig and classConfig are the yaml shape of a class, decoded by viper
type rangeConfig struct {
	Lower []float64 `mapstructure:"lower"`
	Upper []float64 `mapstructure:"upper"`
}

type classConfig struct {
	Name     string        `mapstructure:"name"`
	Label    string        `mapstructure:"label"`
	Key      string        `mapstructure:"key"`
	MinArea  float64       `mapstructure:"min_area"`
	BoxColor string        `mapstructure:"box_color"`
	Ranges   []rangeConfig `mapstructure:"ranges"`
}

//DefaultClasses are the friendly, opponent and note thresholds tuned on the field
func DefaultClasses() []map[string]interface{} {
	class := func(name, label, key string, minArea float64, ranges ...[2][3]float64) map[string]interface{} {
		rs := make([]map[string]interface{}, 0, len(ranges))
		for _, r := range ranges {
			rs = append(rs, map[string]interface{}{
				"lower": []float64{r[0][0], r[0][1], r[0][2]},
				"upper": []float64{r[1][0], r[1][1], r[1][2]},
			})
		}

		return map[string]interface{}{
			"name":      name,
			"label":     label,
			"key":       key,
			"min_area":  minArea,
			"box_color": utils.DefaultBoxColor,
			"ranges":    rs,
		}
	}

	return []map[string]interface{}{
		class(utils.FriendlyClass, utils.FriendlyLabel, utils.FriendlyKey, 1000,
			[2][3]float64{{80, 100, 0}, {90, 245, 245}},
			[2][3]float64{{90, 100, 0}, {130, 245, 245}}),
		class(utils.OpponentClass, utils.OpponentLabel, utils.OpponentKey, 700,
			[2][3]float64{{1, 5, 5}, {5, 150, 150}},
			[2][3]float64{{160, 5, 5}, {255, 245, 245}}),
		class(utils.NoteClass, utils.NoteLabel, utils.NoteKey, 500,
			[2][3]float64{{4.5, 50, 50}, {25, 255, 255}}),
	}
}

//SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("camera.device", "0")
	v.SetDefault("camera.max_read_failures", 0)
	v.SetDefault("display.enabled", false)
	v.SetDefault("display.wait_ms", 10)
	v.SetDefault("morphology.kernel_size", utils.DefaultKernelSize)
	v.SetDefault("morphology.erode_iterations", 2)
	v.SetDefault("morphology.dilate_iterations", 1)
	v.SetDefault("table.mode", TableServe)
	v.SetDefault("table.listen", ":5800")
	v.SetDefault("table.server", "")
	v.SetDefault("table.timeout", "250ms")
	v.SetDefault("record.enabled", false)
	v.SetDefault("record.path", "detections.db")
	v.SetDefault("record.video", "")
	v.SetDefault("classes", DefaultClasses())
}

//New returns a viper instance with defaults, env overrides (COLORDETECT_ prefix) and the
//config file search paths set. It loads .env first when present.
func New(configFile string) *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config.New: Could not read .env file, got '%v'", err)
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("COLORDETECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.colordetect")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	return v
}

//Load reads the config file (a missing default file is not an error) and decodes it
func Load(v *viper.Viper, requireFile bool) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if requireFile || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Load: could not read config file, got '%v'", err)
		}
		log.Printf("Load: No config file found, using defaults")
	} else {
		log.Printf("Load: Using config file '%s'", v.ConfigFileUsed())
	}

	return Decode(v)
}

//Decode builds and validates a Config from v
func Decode(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString("table.timeout"))
	if err != nil {
		return nil, fmt.Errorf("Decode: bad table.timeout, got '%v'", err)
	}

	cfg := &Config{
		Camera: CameraConfig{
			Device:          v.GetString("camera.device"),
			MaxReadFailures: v.GetInt("camera.max_read_failures"),
		},
		Display: DisplayConfig{
			Enabled: v.GetBool("display.enabled"),
			WaitMs:  v.GetInt("display.wait_ms"),
		},
		Morphology: vision.Morphology{
			KernelSize:       v.GetInt("morphology.kernel_size"),
			ErodeIterations:  v.GetInt("morphology.erode_iterations"),
			DilateIterations: v.GetInt("morphology.dilate_iterations"),
		},
		Table: TableConfig{
			Mode:    strings.ToLower(v.GetString("table.mode")),
			Listen:  v.GetString("table.listen"),
			Server:  v.GetString("table.server"),
			Timeout: timeout,
		},
		Record: RecordConfig{
			Enabled: v.GetBool("record.enabled"),
			Path:    v.GetString("record.path"),
			Video:   v.GetString("record.video"),
		},
	}

	var raw []classConfig
	if err := v.UnmarshalKey("classes", &raw); err != nil {
		return nil, fmt.Errorf("Decode: bad classes, got '%v'", err)
	}

	for _, c := range raw {
		class, err := c.params()
		if err != nil {
			return nil, fmt.Errorf("Decode: %w", err)
		}
		cfg.Classes = append(cfg.Classes, class)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c classConfig) params() (vision.ClassParams, error) {
	if c.Name == "" {
		return vision.ClassParams{}, errors.New("class without a name")
	}

	boxColor, err := ParseColor(c.BoxColor)
	if err != nil {
		return vision.ClassParams{}, fmt.Errorf("class '%s': %w", c.Name, err)
	}

	params := vision.ClassParams{
		Name:     c.Name,
		Label:    c.Label,
		Key:      c.Key,
		MinArea:  c.MinArea,
		BoxColor: boxColor,
	}

	for i, r := range c.Ranges {
		if len(r.Lower) != 3 || len(r.Upper) != 3 {
			return vision.ClassParams{}, fmt.Errorf("class '%s': range %d needs 3 lower and 3 upper values", c.Name, i)
		}

		params.Ranges = append(params.Ranges, vision.HSVRange{
			Lower: [3]float64{r.Lower[0], r.Lower[1], r.Lower[2]},
			Upper: [3]float64{r.Upper[0], r.Upper[1], r.Upper[2]},
		})
	}

	return params, nil
}

//ParseColor parses a "#RRGGBB" color. An empty string gives utils.DefaultBoxColor.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		hex = utils.DefaultBoxColor
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color '%s', got '%v'", hex, err)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0}, nil
}

//Validate checks cross field constraints
func (c *Config) Validate() error {
	switch c.Table.Mode {
	case TableServe:
		if c.Table.Listen == "" {
			return errors.New("Validate: table.listen is required when serving the table")
		}
	case TableRemote:
		if c.Table.Server == "" {
			return errors.New("Validate: table.server is required in remote mode")
		}
	case TableNone:
	default:
		return fmt.Errorf("Validate: unknown table.mode '%s'", c.Table.Mode)
	}

	if c.Display.WaitMs < 1 {
		return fmt.Errorf("Validate: display.wait_ms must be at least 1, got %d", c.Display.WaitMs)
	}

	if c.Camera.Device == "" {
		return errors.New("Validate: camera.device is required")
	}

	if c.Record.Enabled && c.Record.Path == "" {
		return errors.New("Validate: record.path is required when recording")
	}

	if c.Morphology.KernelSize <= 0 {
		return fmt.Errorf("Validate: invalid morphology.kernel_size %d", c.Morphology.KernelSize)
	}

	if len(c.Classes) == 0 {
		return errors.New("Validate: no classes configured")
	}

	names := make([]string, 0, len(c.Classes))
	for _, class := range c.Classes {
		if utils.InSlice(class.Name, names) {
			return fmt.Errorf("Validate: duplicate class '%s'", class.Name)
		}
		names = append(names, class.Name)

		if class.Key == "" {
			return fmt.Errorf("Validate: class '%s' has no table key", class.Name)
		}

		if strings.Contains(class.Key, "/") {
			return fmt.Errorf("Validate: class '%s' table key '%s' contains '/'", class.Name, class.Key)
		}

		if class.MinArea < 0 {
			return fmt.Errorf("Validate: class '%s' has a negative min_area", class.Name)
		}

		if len(class.Ranges) == 0 {
			return fmt.Errorf("Validate: class '%s' has no ranges", class.Name)
		}

		for i, r := range class.Ranges {
			for ch := 0; ch < 3; ch++ {
				if r.Lower[ch] > r.Upper[ch] {
					return fmt.Errorf("Validate: class '%s' range %d channel %d has lower > upper", class.Name, i, ch)
				}
			}
		}
	}

	return nil
}

//Filter keeps only the classes whose name is in names. An empty names keeps all of them.
func (c *Config) Filter(names []string) error {
	if len(names) == 0 {
		return nil
	}

	configured := c.ClassNames()
	for _, name := range names {
		if !utils.InSlice(name, configured) {
			return fmt.Errorf("Filter: unknown class '%s'", name)
		}
	}

	kept := make([]vision.ClassParams, 0, len(names))
	for _, class := range c.Classes {
		if utils.InSlice(class.Name, names) {
			kept = append(kept, class)
		}
	}

	c.Classes = kept
	return nil
}

//ClassNames returns the configured class names in detection order
func (c *Config) ClassNames() []string {
	names := make([]string, 0, len(c.Classes))
	for _, class := range c.Classes {
		names = append(names, class.Name)
	}

	return names
}
