package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kdudkov/chinacoord/pkg/model"
)

type App struct {
	addr        string
	layersFile  string
	logRequests bool
	logger      *zap.Logger
	layers      *Layers
	http        *fiber.App
}

func NewApp(addr, layersFile string, logger *zap.Logger) *App {
	return &App{
		layers:     NewLayers(),
		logger:     logger,
		addr:       addr,
		layersFile: layersFile,
	}
}

// loadLayers reads the layers file, bad layers are logged and skipped.
func (app *App) loadLayers() error {
	d, err := os.ReadFile(app.layersFile)
	if err != nil {
		return err
	}

	res, err := model.ParseDescriptions(d)
	if err != nil {
		return err
	}

	logger := app.logger.Named("layers")
	layers := make([]*model.Layer, 0, len(res))

	for _, desc := range res {
		l, err := model.NewLayer(desc)
		if err != nil {
			logger.Error("invalid layer", zap.String("key", desc.Key), zap.Error(err))
			continue
		}

		layers = append(layers, l)
		logger.Info("loaded layer " + l.String())
	}

	app.layers.Replace(layers)
	layersLoaded.Set(float64(len(layers)))

	return nil
}

func (app *App) Run() {
	if err := app.loadLayers(); err != nil {
		if !os.IsNotExist(err) {
			app.logger.Fatal("can't load layers", zap.Error(err))
		}

		app.logger.Warn("no layers file " + app.layersFile)
	}

	app.http = NewHttp(app)

	app.logger.Info("listening on " + app.addr)

	go func() {
		if err := app.http.Listen(app.addr); err != nil {
			app.logger.Fatal("http server error", zap.Error(err))
		}
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		app.logger.Fatal("can't create watcher", zap.Error(err))
	}

	defer watcher.Close()

	go app.watch(watcher)

	// watch the directory, editors replace files instead of writing them
	if err := watcher.Add(filepath.Dir(app.layersFile)); err != nil {
		app.logger.Error("can't watch layers file", zap.Error(err))
	}

	app.loop()
	app.close()
}

func (app *App) watch(watcher *fsnotify.Watcher) {
	name := filepath.Clean(app.layersFile)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != name {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			app.logger.Info(fmt.Sprintf("event: %s", event))

			if err := app.loadLayers(); err != nil {
				app.logger.Error("error reloading layers", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			app.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (app *App) close() {
	if app.http == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := app.http.ShutdownWithContext(ctx); err != nil {
		app.logger.Error("shutdown error", zap.Error(err))
	}

	_ = app.logger.Sync()
}

func (app *App) loop() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	<-sigc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func newLogger(debug bool) (*zap.Logger, error) {
	var config zap.Config

	if debug {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

func main() {
	_ = godotenv.Load()

	var addr = flag.String("addr", getEnv("COORD_ADDR", ":8888"), "listen address")
	var layersFile = flag.String("layers", getEnv("COORD_LAYERS", "layers.yml"), "layers file")
	var debug = flag.Bool("debug", false, "")
	var ver = flag.Bool("version", false, "print version")

	flag.Parse()

	if *ver {
		fmt.Println(getVersionFull())
		return
	}

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Printf("can't create logger: %s\n", err.Error())
		os.Exit(1)
	}

	logger.Info("starting " + getVersion())

	app := NewApp(*addr, *layersFile, logger)
	app.logRequests = *debug
	app.Run()
}
