// Package route maps dashboard paths to views.
//
// A route table is a static tree declared once at startup. Patterns use
// "/"-separated segments: a literal, ":name" for a required parameter,
// ":name?" for an optional trailing parameter, or "*" to match anything.
// Child paths are relative to their parent.
package route

// View identifies a screen the host application can mount.
type View string

const (
	ViewPipelines View = "pipelines"
	ViewPipeline  View = "pipeline"
	ViewSteps     View = "pipeline-view"
	ViewTests     View = "tests"
	ViewArtifacts View = "artifacts"
	ViewNotFound  View = "notfound"
	ViewError     View = "error"
)

// Parameter names bound by the default table.
const (
	ParamPipeline = "pipelineid"
	ParamStage    = "stageid"
	ParamStep     = "stepid"
)

// NotFoundPath is where unmatched paths end up.
const NotFoundPath = "/notfound"

// Route is one node of the route tree. A route either mounts View, or
// redirects to Redirect, or only groups Children under a shared prefix
// and layout view.
type Route struct {
	Path     string
	View     View
	Redirect string
	Children []Route
}

// Params holds parameters bound while matching.
type Params map[string]string

// Get returns the named parameter or "".
func (p Params) Get(name string) string {
	return p[name]
}

// Resolution is the outcome of resolving a path.
type Resolution struct {
	// Path is the final path after redirects, normalized.
	Path string
	// View is the leaf view to mount.
	View View
	// Layout is the enclosing parent view, empty for top level routes.
	Layout View
	Params Params
	// RedirectedFrom is the requested path when one or more redirects were
	// followed.
	RedirectedFrom string
}

// Param returns the named parameter of the resolution.
func (r Resolution) Param(name string) string {
	return r.Params.Get(name)
}

// Routes returns the dashboard route table.
func Routes() []Route {
	return []Route{
		{Path: "/", View: ViewPipelines},
		{Path: "/notfound", View: ViewNotFound},
		{Path: "/error", View: ViewError},
		{Path: "/:pipelineid/", View: ViewPipeline, Children: []Route{
			{Path: "", Redirect: "view"},
			{Path: "view/:stepid?", View: ViewSteps},
			{Path: "tests/:stageid?", View: ViewTests},
			{Path: "artifacts/:stageid?", View: ViewArtifacts},
		}},
		{Path: "*", Redirect: NotFoundPath},
	}
}
