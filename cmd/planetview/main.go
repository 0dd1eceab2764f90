package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"planetview/internal/config"
	"planetview/internal/convert"
	"planetview/internal/shading"
	"planetview/internal/utils"
)

func init() {
	runtime.LockOSThread()
}

// options mirrors the settings that can be overridden on the command line.
// Only flags the user actually set are applied over the config file.
type options struct {
	configPath   string
	texture      string
	shaderDir    string
	assetsPath   string
	palette      string
	rotationMode string
	quality      float64
	lightPower   float64
	starSeed     int64
	width        int
	height       int
	wallpaper    bool
	telemetry    string
	logLevel     string
	debug        bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:           "planetview",
	Short:         "Interactive animated planet with atmosphere, glow and starfield",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

var packCmd = &cobra.Command{
	Use:   "pack <src> <dst>",
	Short: "Convert PNG/JPEG planet textures into lz4-compressed .ptex files",
	Long: "Convert a PNG/JPEG planet texture into an lz4-compressed .ptex file.\n" +
		"When src is a directory every image below it is packed into dst, keeping the layout.",
	Args: cobra.ExactArgs(2),
	RunE: runPack,
}

func runPack(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if info.IsDir() {
		n, err := convert.PackDir(src, dst)
		if err != nil {
			return fmt.Errorf("pack %s: %w", src, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "packed %d textures into %s\n", n, dst)
		return nil
	}

	if err := convert.PackFile(src, dst); err != nil {
		return fmt.Errorf("pack %s: %w", src, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "packed %s -> %s\n", src, dst)
	return nil
}

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the built-in colour palettes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range shading.PaletteNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	bindFlags(rootCmd.Flags(), &opts)
	rootCmd.AddCommand(packCmd, palettesCmd)
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.configPath, "config", "c", config.DefaultPath, "Path to the JSON settings file")
	fs.StringVarP(&o.texture, "texture", "t", "", "Planet surface texture (.png, .jpg or .ptex)")
	fs.StringVar(&o.shaderDir, "shader-dir", "", "Directory with <shell>.vs/.fs overrides")
	fs.StringVar(&o.assetsPath, "assets", "", "Custom assets directory")
	fs.StringVarP(&o.palette, "palette", "p", "", "Colour palette (see 'planetview palettes')")
	fs.StringVarP(&o.rotationMode, "rotation", "r", "", "Rotation mode: inertial or fixed")
	fs.Float64VarP(&o.quality, "quality", "q", 1, "Sphere resolution scale in (0, 1]")
	fs.Float64Var(&o.lightPower, "light-power", shading.DefaultLightPower, "Exponent applied to the combined light term")
	fs.Int64Var(&o.starSeed, "star-seed", 0, "Starfield seed (0 picks one from the clock)")
	fs.IntVar(&o.width, "width", 0, "Window width")
	fs.IntVar(&o.height, "height", 0, "Window height")
	fs.BoolVarP(&o.wallpaper, "wallpaper", "w", false, "Run as a borderless desktop wallpaper")
	fs.StringVar(&o.telemetry, "telemetry", "", "Serve the frame feed over websocket on this address")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVarP(&o.debug, "debug", "d", false, "Enable verbose debug logging and open the F8 overlay")
}

// apply copies every flag set on fs into s.
func (o *options) apply(fs *pflag.FlagSet, s *config.Settings) {
	if fs.Changed("texture") {
		s.Texture = o.texture
	}
	if fs.Changed("shader-dir") {
		s.ShaderDir = o.shaderDir
	}
	if fs.Changed("assets") {
		s.AssetsPath = o.assetsPath
	}
	if fs.Changed("palette") {
		s.Palette.Name = o.palette
	}
	if fs.Changed("rotation") {
		s.RotationMode = o.rotationMode
	}
	if fs.Changed("quality") {
		s.Quality = o.quality
	}
	if fs.Changed("light-power") {
		s.LightPower = o.lightPower
	}
	if fs.Changed("star-seed") {
		s.Stars.Seed = o.starSeed
	}
	if fs.Changed("width") {
		s.Window.Width = o.width
	}
	if fs.Changed("height") {
		s.Window.Height = o.height
	}
	if fs.Changed("wallpaper") {
		s.Window.Wallpaper = o.wallpaper
	}
	if fs.Changed("telemetry") {
		s.Telemetry.Addr = o.telemetry
	}
	if fs.Changed("log-level") {
		s.LogLevel = o.logLevel
	}
}

func runViewer(cmd *cobra.Command, args []string) error {
	utils.DebugMode = opts.debug
	utils.ShowDebugUI = opts.debug

	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd.Flags(), &settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	level, _ := utils.ParseLevel(settings.LogLevel)
	utils.SetLevel(level)

	config.DiscoverAssets(settings.AssetsPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Info("--- planetview start ---")
	app, err := NewApp(settings)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}
