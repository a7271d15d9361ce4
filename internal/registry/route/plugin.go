// Package route is the registry of route plugins. Plugin packages register
// themselves from init(); the serve command mounts them in order.
package route

import (
	"sort"
	"sync"

	"github.com/chirino/docmodel/internal/model"
	"github.com/gin-gonic/gin"
)

// RouterLoader mounts routes on the gin engine. mm is the shared model
// manager and may be nil when a plugin is mounted without a store.
type RouterLoader func(r *gin.Engine, mm *model.ModelManager) error

// RouteType distinguishes which server a plugin's routes belong to.
type RouteType int

const (
	// RouteTypeMain registers routes on the main API server.
	RouteTypeMain RouteType = iota
	// RouteTypeManagement registers routes on the management server (health, metrics).
	// When no dedicated management port is configured, these are mounted on the main server.
	RouteTypeManagement
)

// Plugin represents a route plugin with an order for deterministic mount sequence.
type Plugin struct {
	Order  int
	Type   RouteType
	Loader RouterLoader
}

var (
	mu      sync.Mutex
	plugins []Plugin
)

// Register adds a route plugin. Called from init() in plugin packages.
func Register(p Plugin) {
	mu.Lock()
	defer mu.Unlock()
	plugins = append(plugins, p)
}

// Loaders returns the loaders of plugins of type t, sorted by order.
func Loaders(t RouteType) []RouterLoader {
	mu.Lock()
	defer mu.Unlock()
	sort.SliceStable(plugins, func(i, j int) bool { return plugins[i].Order < plugins[j].Order })
	var loaders []RouterLoader
	for _, p := range plugins {
		if p.Type == t {
			loaders = append(loaders, p.Loader)
		}
	}
	return loaders
}

// MainRouteLoaders returns loaders for RouteTypeMain plugins, sorted by order.
func MainRouteLoaders() []RouterLoader {
	return Loaders(RouteTypeMain)
}

// ManagementRouteLoaders returns loaders for RouteTypeManagement plugins, sorted by order.
func ManagementRouteLoaders() []RouterLoader {
	return Loaders(RouteTypeManagement)
}
