// Package api serves loop route generation over HTTP with
// github.com/gofiber/fiber/v2, a redis-backed cache of built SearchGraphs
// keyed by (region, activity), and a pgx-backed ingest job bookkeeping
// table. The server does not run ingest or corridorize itself: regions are
// loaded from graph and network snapshots written by the CLI, and the job
// endpoints only record and report jobs. It never persists a generated
// route: routes are always computed fresh from the cached or in-memory
// SearchGraph.
package api
