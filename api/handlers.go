package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trailforge/loopcourse/activity"
	"github.com/trailforge/loopcourse/geo"
	"github.com/trailforge/loopcourse/search"
)

// healthHandler reports liveness only; it does not check whether the
// optional redis or postgres backends are reachable.
func (s *state) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// routeHandler handles GET /v1/regions/:region/route?activity=&lat=&lng=&minDistance=&maxDistance=
func (s *state) routeHandler(c *fiber.Ctx) error {
	regionName := c.Params("region")

	activityName := c.Query("activity", "running")
	act, ok := activity.ParseActivity(activityName)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown activity: " + activityName,
		})
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or missing 'lat'"})
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or missing 'lng'"})
	}
	minDistance, err := strconv.ParseFloat(c.Query("minDistance", "3000"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid 'minDistance'"})
	}
	maxDistance, err := strconv.ParseFloat(c.Query("maxDistance", "8000"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid 'maxDistance'"})
	}

	r, err := s.regionFor(regionName)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	params := activity.Resolve(act, s.cfg.BaseConfig(), nil)

	sg, err := s.searchGraphFor(c.Context(), regionName, act, r, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	opts := s.cfg.Search.ApplyTo(search.Options{
		StartCoordinate:   geo.Coordinate{Lat: lat, Lng: lng},
		MinDistanceMeters: minDistance,
		MaxDistanceMeters: maxDistance,
	})

	alternatives, err := search.GenerateLoopRoutesFromSearchGraph(sg, r.network, r.graph, opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if alternatives == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no snap point found within radius of the given coordinate",
		})
	}

	return c.JSON(alternatives)
}

// createIngestJobHandler handles POST /v1/jobs with a JSON body
// {"region": "...", "sourceFile": "..."}. It only bookkeeps the job; the
// actual OSM parse is run out-of-band via `loopcourse ingest`.
func (s *state) createIngestJobHandler(c *fiber.Ctx) error {
	if s.jobs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "job bookkeeping is not configured"})
	}

	var body struct {
		Region     string `json:"region"`
		SourceFile string `json:"sourceFile"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if body.Region == "" || body.SourceFile == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "region and sourceFile are required"})
	}

	id, err := s.jobs.CreateJob(c.Context(), body.Region, body.SourceFile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// getIngestJobHandler handles GET /v1/jobs/:id.
func (s *state) getIngestJobHandler(c *fiber.Ctx) error {
	if s.jobs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "job bookkeeping is not configured"})
	}

	job, err := s.jobs.Job(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}
