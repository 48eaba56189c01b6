package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Request limits
const (
	minDimension     = 2
	maxDimension     = 4000
	defaultWidth     = 1200
	defaultHeight    = 600
	maxCoordinate    = 1000.0
	maxRadius        = 1000.0
	maxBrightness    = 100.0
	consoleBufferLen = 64
)

var errUnknownScene = errors.New("unknown scene")

// Server handles web requests for the ray caster
type Server struct {
	port      int
	scenesDir string // Empty means the default scenes directory
	renders   atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string       `json:"scene"`  // Scene name, "interactive" uses Params
	Width  int          `json:"width"`  // Image width
	Height int          `json:"height"` // Image height
	Format string       `json:"format"` // "png" or "json"
	Params scene.Params `json:"params"` // Interactive scene fields
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int     `json:"totalPixels"`
	HitPixels    int     `json:"hitPixels"`
	ShadowRays   int     `json:"shadowRays"`
	OccludedRays int     `json:"occludedRays"`
	Tiles        int     `json:"tiles"`
	Workers      int     `json:"workers"`
	Luminance    float64 `json:"luminance"`
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders a scene and returns it as a PNG or as JSON with statistics
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		status := http.StatusBadRequest
		if !isClientError(err) && !errors.Is(err, errUnknownScene) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	consoleChan := make(chan ConsoleMessage, consoleBufferLen)
	webLogger := NewWebLogger(renderID, consoleChan)

	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height, renderer.DefaultConfig(), webLogger)

	// Use request context to stop rendering when the client disconnects
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("Render error: %v", err))
		return
	}

	if req.Format == "json" {
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:  stats.TotalPixels,
				HitPixels:    stats.HitPixels,
				ShadowRays:   stats.ShadowRays,
				OccludedRays: stats.OccludedRays,
				Tiles:        stats.Tiles,
				Workers:      stats.Workers,
				Luminance:    stats.AverageLuminance,
			},
			Console:   drainConsole(consoleChan),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: "png", Params: scene.DefaultParams()}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if format := query.Get("format"); format != "" {
		if format != "png" && format != "json" {
			return nil, fmt.Errorf("format must be png or json, got: %s", format)
		}
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, minDimension, maxDimension); err != nil {
		return nil, err
	}

	p := &req.Params
	vectors := []struct {
		prefix string
		v      *core.Vec3
	}{
		{"cam", &p.Camera},
		{"sphere", &p.SphereCenter},
		{"light", &p.LightPosition},
	}
	for _, vec := range vectors {
		if *vec.v, err = parseVecParams(query, vec.prefix, *vec.v); err != nil {
			return nil, err
		}
	}
	if p.SphereRadius, err = parseFloatParam(query, "radius", p.SphereRadius, 1e-6, maxRadius); err != nil {
		return nil, err
	}
	if p.LightBrightness, err = parseFloatParam(query, "brightness", p.LightBrightness, 0, maxBrightness); err != nil {
		return nil, err
	}

	return req, nil
}

// createScene builds the requested scene. Only built-in scenes and scenes from the
// scenes directory are reachable; file paths are rejected.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if req.Scene == "interactive" {
		if err := req.Params.Validate(); err != nil {
			return nil, err
		}
		return scene.NewParamsScene(req.Params), nil
	}

	if strings.ContainsAny(req.Scene, `/\`) || strings.HasSuffix(req.Scene, ".json") {
		return nil, fmt.Errorf("%w: %s", errUnknownScene, req.Scene)
	}
	if sceneObj, ok := scene.NewBuiltinScene(req.Scene); ok {
		return sceneObj, nil
	}

	scenes, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == req.Scene {
			return scene.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %s", errUnknownScene, req.Scene)
}

// handleSceneConfig returns the interactive scene defaults and request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":    "interactive",
		"defaults": scene.DefaultParams(),
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minDimension, "max": maxDimension},
			"height":     map[string]int{"min": minDimension, "max": maxDimension},
			"coordinate": map[string]float64{"min": -maxCoordinate, "max": maxCoordinate},
			"radius":     map[string]float64{"min": 1e-6, "max": maxRadius},
			"brightness": map[string]float64{"min": 0, "max": maxBrightness},
		},
	})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		// Also rejects NaN
		if !(parsed >= min && parsed <= max) {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseVecParams reads <prefix>X, <prefix>Y and <prefix>Z, keeping defaults for missing ones
func parseVecParams(values url.Values, prefix string, defaultValue core.Vec3) (core.Vec3, error) {
	var err error
	v := defaultValue
	if v.X, err = parseFloatParam(values, prefix+"X", v.X, -maxCoordinate, maxCoordinate); err != nil {
		return v, err
	}
	if v.Y, err = parseFloatParam(values, prefix+"Y", v.Y, -maxCoordinate, maxCoordinate); err != nil {
		return v, err
	}
	if v.Z, err = parseFloatParam(values, prefix+"Z", v.Z, -maxCoordinate, maxCoordinate); err != nil {
		return v, err
	}
	return v, nil
}

func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// isClientError reports whether err comes from bad request input
func isClientError(err error) bool {
	return errors.Is(err, scene.ErrInvalidScene) || errors.Is(err, renderer.ErrInvalidDimensions)
}
