package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magicframe/magic/internal/project"
	"github.com/magicframe/magic/output"
)

// route is one registration found in the route files.
type route struct {
	Method  string
	Path    string
	Handler string
}

// Matches Router.get('/users', UserController.index) and the other verb
// helpers. Closure handlers leave the handler column empty.
var routePattern = regexp.MustCompile(
	`Router\.(get|post|put|patch|delete|options|head)\(\s*'([^']*)'(?:\s*,\s*([A-Za-z_][A-Za-z0-9_]*\.[A-Za-z_][A-Za-z0-9_]*))?`)

// RouteListCmd prints every route registered in lib/routes.
func RouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List the application's routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}

			routes, err := scanRoutes(root)
			if err != nil {
				return err
			}
			if len(routes) == 0 {
				output.Info("No routes defined")
				return nil
			}

			printRoutes(cmd, routes)
			return nil
		},
	}
}

// scanRoutes collects registrations from every .dart file under lib/routes.
// A project without a routes directory simply has no routes.
func scanRoutes(root string) ([]route, error) {
	dir := filepath.Join(root, "lib", "routes")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var routes []route
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".dart" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, m := range routePattern.FindAllStringSubmatch(string(data), -1) {
			routes = append(routes, route{
				Method:  strings.ToUpper(m[1]),
				Path:    m[2],
				Handler: m[3],
			})
		}
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes, nil
}

func printRoutes(cmd *cobra.Command, routes []route) {
	methodWidth, pathWidth := len("METHOD"), len("PATH")
	for _, r := range routes {
		if len(r.Method) > methodWidth {
			methodWidth = len(r.Method)
		}
		if len(r.Path) > pathWidth {
			pathWidth = len(r.Path)
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-*s  %-*s  %s\n", methodWidth, "METHOD", pathWidth, "PATH", "HANDLER")
	for _, r := range routes {
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", methodWidth, r.Method, pathWidth, r.Path, r.Handler)
	}
}
