package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

const (
	ServiceName = "foodhub-gateway"
	RoleHeader  = "X-User-Role"
	RoleAdmin   = "admin"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	StorefrontSvcURL string
	FrontendDir      string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

// HealthCheck reports the gateway itself and the storefront it fronts. It
// does not call the storefront.
func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "healthy",
		"service":    ServiceName,
		"storefront": g.config.StorefrontSvcURL,
	})
}

// ProxyRequest replays r against storefrontURL with the same path, query,
// headers and body, and streams the answer back unchanged.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, storefrontURL string) {
	target := strings.TrimRight(storefrontURL, "/") + r.URL.RequestURI()
	log.Printf("[GATEWAY] %s %s -> %s", r.Method, r.URL.Path, target)

	upstream, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		log.Printf("[GATEWAY] Bad upstream request for %s: %v", r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "could not build storefront request")
		return
	}
	upstream.Header = r.Header.Clone()

	resp, err := g.client.Do(upstream)
	if err != nil {
		log.Printf("[GATEWAY] Storefront unreachable at %s: %v", storefrontURL, err)
		writeError(w, http.StatusBadGateway, "storefront unavailable")
		return
	}
	defer resp.Body.Close()

	header := w.Header()
	for k, v := range resp.Header {
		header[k] = v
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[GATEWAY] Response copy for %s cut short: %v", r.URL.Path, err)
	}
}

// RouteHandler forwards /api/* to the storefront and serves the front-end for
// every other path. Admin routes require the admin role header.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/api/admin" || strings.HasPrefix(path, "/api/admin/") {
		if !strings.EqualFold(r.Header.Get(RoleHeader), RoleAdmin) {
			log.Printf("[GATEWAY] Rejected %s %s: admin role required", r.Method, path)
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		g.ProxyRequest(w, r, g.config.StorefrontSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		g.ProxyRequest(w, r, g.config.StorefrontSvcURL)
		return
	}

	g.serveFrontend(w, r)
}

// serveFrontend serves a file from the front-end directory, falling back to
// index.html so client-side routes such as /review resolve.
func (g *Gateway) serveFrontend(w http.ResponseWriter, r *http.Request) {
	dir := g.config.FrontendDir
	if dir == "" {
		dir = "./frontend"
	}
	name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(dir, "index.html"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
