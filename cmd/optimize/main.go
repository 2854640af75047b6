package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"avatar-quest-optimizer/internal/config"
	"avatar-quest-optimizer/internal/host"
	"avatar-quest-optimizer/internal/logger"
	"avatar-quest-optimizer/internal/optimize"
	"avatar-quest-optimizer/internal/texture"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to optimizer.yaml")
	blender := fs.String("blender", "", "Blender binary (default from config)")
	suffix := fs.String("suffix", "", "Output filename suffix (default _QUEST_SMART)")
	maxTexture := fs.Int("max-texture", 0, "Texture size budget in pixels")
	skipTextures := fs.Bool("skip-textures", false, "Skip the texture budget pass")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	// Flags come before the conventional "--" separator, the input scene
	// path after it.
	sep := -1
	for i, arg := range args {
		if arg == "--" {
			sep = i
			break
		}
	}

	flagArgs := args
	if sep >= 0 {
		flagArgs = args[:sep]
	}
	fs.Parse(flagArgs)

	if sep < 0 || sep+1 >= len(args) {
		fmt.Println("[ERROR] No input file passed.")
		return 0
	}
	input := args[sep+1]

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	cfg.Resolve(config.Flags{
		Blender:      *blender,
		Suffix:       *suffix,
		MaxTexture:   *maxTexture,
		SkipTextures: *skipTextures,
		Verbose:      *verbose,
	})

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer log.Sync()

	if err := cfg.Rules().Validate(); err != nil {
		log.Errorf("[ERROR] %v", err)
		return 1
	}

	log.Infof("[PROCESSING] %s", input)

	h := &host.Blender{
		Binary:  cfg.Blender.Binary,
		Timeout: cfg.Blender.Timeout(),
	}

	report, err := optimize.Run(context.Background(), h, input, optimize.Options{
		Rules:    cfg.Rules(),
		Decimate: cfg.DecimateOptions(),
		Export:   host.DefaultExportOptions(),
		Suffix:   cfg.Export.Suffix,
		Log:      log,
	})
	if err != nil {
		log.Errorf("[ERROR] %v", err)
		return 1
	}

	if cfg.Textures.Enabled {
		runTexturePass(log, cfg, input, report)
	}

	manifestPath := optimize.ManifestPath(report.Output)
	if err := optimize.WriteManifest(manifestPath, report); err != nil {
		log.Warnf("[WARN] manifest write failed: %v", err)
	}

	log.Infof("[COMPLETE] Saved to %s", report.Output)
	return 0
}

func runTexturePass(log *zap.SugaredLogger, cfg config.Config, input string, report *optimize.Report) {
	paths := texture.Discover(input)
	if len(paths) == 0 {
		return
	}

	outDir := strings.TrimSuffix(report.Output, filepath.Ext(report.Output)) + ".fbm"
	log.Infof("[TEXTURES] %d candidate(s), budget %dpx", len(paths), cfg.Textures.MaxSize)

	report.Textures = texture.Process(paths, outDir, texture.Options{
		MaxSize: cfg.Textures.MaxSize,
		Workers: cfg.Textures.Workers,
	})

	for _, tr := range report.Textures {
		if tr.Error != "" {
			log.Errorf("  [ERROR] Could not convert %s: %s", filepath.Base(tr.Source), tr.Error)
			continue
		}
		if tr.Resized {
			log.Infof("  [RESIZE] %s -> %dx%d", filepath.Base(tr.Source), tr.Width, tr.Height)
		}
	}
}
