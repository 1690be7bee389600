package main

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kdudkov/chinacoord/pkg/coord"
	"github.com/kdudkov/chinacoord/pkg/mapper"
	"github.com/kdudkov/chinacoord/pkg/model"
)

type transformResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Lng        float64 `json:"lng"`
	Lat        float64 `json:"lat"`
	OutOfChina bool    `json:"out_of_china"`
}

type layerResponse struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Url     string `json:"url"`
	MinZoom int    `json:"min_zoom"`
	MaxZoom int    `json:"max_zoom"`
	System  string `json:"system"`
	Tms     bool   `json:"tms"`
}

type locateResponse struct {
	Layer  string           `json:"layer"`
	Tile   mapper.Tile      `json:"tile"`
	Url    string           `json:"url"`
	Center coord.Coordinate `json:"center"`
}

func NewHttp(app *App) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnablePrintRoutes:     false,
		ErrorHandler:          errorHandler(app.logger),
	})

	if app.logRequests {
		f.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${queryParams}\n",
		}))
	}

	f.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	f.Use(timingMiddleware)

	f.Get("/systems", getSystemsHandler)
	f.Get("/transform", getTransformHandler)
	f.Get("/layers", getLayersHandler(app))
	f.Get("/layers/:name/locate", getLocateHandler(app))
	f.Get("/tiles/:name/:zoom/:x/:y", getTileHandler(app))
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return f
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

func timingMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()

	if err != nil {
		status = fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}
	}

	requestDurationMs.WithLabelValues(c.Method(), strconv.Itoa(status)).
		Observe(float64(time.Since(start).Microseconds()) / 1000)

	return err
}

func getSystemsHandler(c *fiber.Ctx) error {
	r := make([]string, 0, 3)

	for _, s := range coord.Systems() {
		r = append(r, s.String())
	}

	return c.JSON(r)
}

func getTransformHandler(c *fiber.Ctx) error {
	p, err := queryCoordinate(c)
	if err != nil {
		return err
	}

	from, err := querySystem(c, "from", "")
	if err != nil {
		return err
	}

	to, err := querySystem(c, "to", "")
	if err != nil {
		return err
	}

	var res coord.Coordinate
	if c.QueryBool("exact", false) {
		res = coord.TransformExact(p, from, to)
	} else {
		res = coord.Transform(p, from, to)
	}

	transformsTotal.WithLabelValues(from.String(), to.String()).Inc()

	return c.JSON(transformResponse{
		From:       from.String(),
		To:         to.String(),
		Lng:        res.Lng,
		Lat:        res.Lat,
		OutOfChina: coord.OutOfChina(p.Lng, p.Lat),
	})
}

func getLayersHandler(app *App) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		r := make([]layerResponse, 0)

		for _, l := range app.layers.Sorted() {
			r = append(r, layerResponse{
				Key:     l.GetKey(),
				Name:    l.GetName(),
				Url:     "/tiles/" + url.PathEscape(l.GetKey()) + "/{z}/{x}/{y}",
				MinZoom: l.GetMinZoom(),
				MaxZoom: l.GetMaxZoom(),
				System:  l.System().String(),
				Tms:     l.IsTms(),
			})
		}

		return c.JSON(r)
	}
}

func getLocateHandler(app *App) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		layer, err := app.getLayer(c.Params("name"))
		if err != nil {
			return err
		}

		p, err := queryCoordinate(c)
		if err != nil {
			return err
		}

		from, err := querySystem(c, "from", coord.WGS84.String())
		if err != nil {
			return err
		}

		zoom, err := strconv.Atoi(c.Query("zoom"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid zoom value")
		}

		tile, u, err := layer.Locate(p, from, zoom)
		if err != nil {
			if errors.Is(err, model.ErrZoomRange) || errors.Is(err, mapper.ErrInvalidZoom) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			return err
		}

		center, err := layer.TileCenter(tile, from)
		if err != nil {
			return err
		}

		locateTotal.WithLabelValues(layer.GetKey()).Inc()

		return c.JSON(locateResponse{
			Layer:  layer.GetKey(),
			Tile:   tile,
			Url:    u,
			Center: center,
		})
	}
}

func getTileHandler(app *App) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var err error
		var zoom, x, y int

		layer, err := app.getLayer(c.Params("name"))
		if err != nil {
			return err
		}

		if zoom, err = c.ParamsInt("zoom"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid zoom value")
		}

		if x, err = c.ParamsInt("x"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid x value")
		}

		if y, err = c.ParamsInt("y"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid y value")
		}

		if err := layer.CheckZoom(zoom); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		if x < 0 || y < 0 || x >= 1<<zoom || y >= 1<<zoom {
			return fiber.NewError(fiber.StatusNotFound, "tile is out of range")
		}

		if layer.IsTms() {
			y = 1<<zoom - y - 1
		}

		return c.Redirect(layer.GetUrl(zoom, x, y), fiber.StatusFound)
	}
}

func (app *App) getLayer(name string) (*model.Layer, error) {
	name, _ = url.PathUnescape(name)

	if l, ok := app.layers.Get(name); ok {
		return l, nil
	}

	return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s: %s", model.ErrNoLayer, name))
}

func queryCoordinate(c *fiber.Ctx) (coord.Coordinate, error) {
	lng, err := queryFloat(c, "lng")
	if err != nil {
		return coord.Coordinate{}, err
	}

	lat, err := queryFloat(c, "lat")
	if err != nil {
		return coord.Coordinate{}, err
	}

	return coord.New(lng, lat), nil
}

func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	v, err := strconv.ParseFloat(c.Query(name), 64)

	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s value", name))
	}

	return v, nil
}

func querySystem(c *fiber.Ctx, name, def string) (coord.System, error) {
	s, err := coord.ParseSystem(c.Query(name, def))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return s, nil
}
