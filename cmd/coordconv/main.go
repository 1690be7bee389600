package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/kdudkov/chinacoord/pkg/coord"
)

type App struct {
	from  coord.System
	to    coord.System
	exact bool
}

func NewApp(from, to string, exact bool) (*App, error) {
	f, err := coord.ParseSystem(from)
	if err != nil {
		return nil, err
	}

	t, err := coord.ParseSystem(to)
	if err != nil {
		return nil, err
	}

	return &App{from: f, to: t, exact: exact}, nil
}

func (app *App) Convert(c coord.Coordinate) coord.Coordinate {
	if app.exact {
		return coord.TransformExact(c, app.from, app.to)
	}

	return coord.Transform(c, app.from, app.to)
}

func (app *App) Run(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("need longitude and latitude")
	}

	c, err := parseCoordinate(args[0], args[1])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, app.Convert(c).String())

	return err
}

func parseCoordinate(lngs, lats string) (coord.Coordinate, error) {
	lng, err := strconv.ParseFloat(lngs, 64)
	if err != nil || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return coord.Coordinate{}, fmt.Errorf("invalid longitude %q", lngs)
	}

	lat, err := strconv.ParseFloat(lats, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return coord.Coordinate{}, fmt.Errorf("invalid latitude %q", lats)
	}

	return coord.New(lng, lat), nil
}

// parseArgs pulls numbers out before flag parsing, so negative coordinates
// are not taken for flags.
func parseArgs(fs *flag.FlagSet, args []string) (*App, []string, error) {
	var from = fs.String("from", "wgs84", "source system: wgs84, gcj02 or bd09")
	var to = fs.String("to", "gcj02", "target system: wgs84, gcj02 or bd09")
	var exact = fs.Bool("exact", false, "use iterative gcj02 to wgs84 inverse")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-from system] [-to system] [-exact] LNG LAT\n", fs.Name())
		fs.PrintDefaults()
	}

	var flags, coords []string

	for _, a := range args {
		if _, err := strconv.ParseFloat(a, 64); err == nil {
			coords = append(coords, a)
		} else {
			flags = append(flags, a)
		}
	}

	if err := fs.Parse(flags); err != nil {
		return nil, nil, err
	}

	app, err := NewApp(*from, *to, *exact)
	if err != nil {
		return nil, nil, err
	}

	return app, append(fs.Args(), coords...), nil
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	app, args, err := parseArgs(fs, os.Args[1:])
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	if err := app.Run(os.Stdout, args); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}
