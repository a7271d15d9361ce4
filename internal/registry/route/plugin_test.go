package route

import (
	"testing"

	"github.com/chirino/docmodel/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestLoadersAreOrderedByType(t *testing.T) {
	saved := plugins
	t.Cleanup(func() { plugins = saved })
	plugins = nil

	var mounted []string
	loader := func(name string) RouterLoader {
		return func(*gin.Engine, *model.ModelManager) error {
			mounted = append(mounted, name)
			return nil
		}
	}
	Register(Plugin{Order: 20, Type: RouteTypeMain, Loader: loader("rpc")})
	Register(Plugin{Order: 0, Type: RouteTypeManagement, Loader: loader("system")})
	Register(Plugin{Order: 10, Type: RouteTypeMain, Loader: loader("static")})

	for _, l := range MainRouteLoaders() {
		require.NoError(t, l(nil, nil))
	}
	require.Equal(t, []string{"static", "rpc"}, mounted)

	mounted = nil
	for _, l := range ManagementRouteLoaders() {
		require.NoError(t, l(nil, nil))
	}
	require.Equal(t, []string{"system"}, mounted)
}
