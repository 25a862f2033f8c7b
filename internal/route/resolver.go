package route

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// maxRedirects bounds redirect chains; a longer chain resolves to not-found.
const maxRedirects = 8

type segmentKind int

const (
	segStatic segmentKind = iota
	segParam
	segOptional
	segWildcard
)

type segment struct {
	kind segmentKind
	name string
}

// compiled is a flattened leaf route with its absolute pattern.
type compiled struct {
	pattern  []segment
	view     View
	layout   View
	redirect []segment
}

// Resolver resolves paths against a compiled route table. It is read-only
// after construction and safe for concurrent use.
type Resolver struct {
	routes []compiled
}

// NewResolver compiles routes. It fails on malformed patterns: optional
// parameters or wildcards anywhere but the last segment, duplicate
// parameter names, or routes that neither mount, redirect nor group.
func NewResolver(routes []Route) (*Resolver, error) {
	r := &Resolver{}
	if err := r.flatten(routes, nil, ""); err != nil {
		return nil, err
	}
	sort.SliceStable(r.routes, func(i, j int) bool {
		return staticPrefix(r.routes[i].pattern) > staticPrefix(r.routes[j].pattern)
	})
	return r, nil
}

var defaultResolver = mustNew(Routes())

// Default returns the resolver for the dashboard route table.
func Default() *Resolver {
	return defaultResolver
}

func mustNew(routes []Route) *Resolver {
	r, err := NewResolver(routes)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolver) flatten(routes []Route, parent []segment, layout View) error {
	for _, rt := range routes {
		pattern, err := parsePattern(rt.Path)
		if err != nil {
			return err
		}
		if len(parent) > 0 && strings.HasPrefix(rt.Path, "/") {
			return fmt.Errorf("child route %q must be relative", rt.Path)
		}
		full := append(append([]segment{}, parent...), pattern...)
		if err := validate(full, rt.Path); err != nil {
			return err
		}
		if len(rt.Children) > 0 {
			if err := r.flatten(rt.Children, full, rt.View); err != nil {
				return err
			}
			continue
		}
		if rt.View == "" && rt.Redirect == "" {
			return fmt.Errorf("route %q has no view, redirect or children", rt.Path)
		}
		c := compiled{pattern: full, view: rt.View, layout: layout}
		if rt.Redirect != "" {
			target, err := parsePattern(rt.Redirect)
			if err != nil {
				return err
			}
			if !strings.HasPrefix(rt.Redirect, "/") {
				target = append(append([]segment{}, parent...), target...)
			}
			c.redirect = target
		}
		r.routes = append(r.routes, c)
	}
	return nil
}

func parsePattern(p string) ([]segment, error) {
	var segs []segment
	for _, part := range splitSegments(p) {
		switch {
		case part == "*":
			segs = append(segs, segment{kind: segWildcard})
		case strings.HasPrefix(part, ":") && strings.HasSuffix(part, "?"):
			name := strings.TrimSuffix(strings.TrimPrefix(part, ":"), "?")
			if name == "" {
				return nil, fmt.Errorf("empty parameter name in %q", p)
			}
			segs = append(segs, segment{kind: segOptional, name: name})
		case strings.HasPrefix(part, ":"):
			name := strings.TrimPrefix(part, ":")
			if name == "" {
				return nil, fmt.Errorf("empty parameter name in %q", p)
			}
			segs = append(segs, segment{kind: segParam, name: name})
		default:
			segs = append(segs, segment{kind: segStatic, name: part})
		}
	}
	return segs, nil
}

func validate(segs []segment, path string) error {
	seen := map[string]bool{}
	for i, s := range segs {
		last := i == len(segs)-1
		if (s.kind == segOptional || s.kind == segWildcard) && !last {
			return fmt.Errorf("route %q: %q must be the last segment", path, s.name)
		}
		if s.kind == segParam || s.kind == segOptional {
			if seen[s.name] {
				return fmt.Errorf("route %q: duplicate parameter %q", path, s.name)
			}
			seen[s.name] = true
		}
	}
	return nil
}

// staticPrefix counts leading literal segments. Wildcards sort last.
func staticPrefix(segs []segment) int {
	n := 0
	for _, s := range segs {
		if s.kind == segWildcard {
			return -1
		}
		if s.kind != segStatic {
			break
		}
		n++
	}
	return n
}

// splitPath drops the query, fragment and empty segments, so trailing and
// duplicate slashes do not matter.
func splitPath(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return splitSegments(p)
}

func splitSegments(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Resolve returns the view for path. It never fails: unmatched paths and
// redirect loops resolve to the not-found view.
func (r *Resolver) Resolve(path string) Resolution {
	requested := normalize(path)
	current := requested
	for hop := 0; hop <= maxRedirects; hop++ {
		c, params, ok := r.match(current)
		if !ok {
			return notFound(requested)
		}
		if c.redirect == nil {
			res := Resolution{Path: current, View: c.view, Layout: c.layout, Params: params}
			if current != requested {
				res.RedirectedFrom = requested
			}
			return res
		}
		next, ok := fill(c.redirect, params)
		if !ok {
			return notFound(requested)
		}
		current = next
	}
	return notFound(requested)
}

func notFound(requested string) Resolution {
	res := Resolution{Path: NotFoundPath, View: ViewNotFound, Params: Params{}}
	if requested != NotFoundPath {
		res.RedirectedFrom = requested
	}
	return res
}

func (r *Resolver) match(path string) (compiled, Params, bool) {
	parts := splitPath(path)
	for i := range parts {
		if v, err := url.PathUnescape(parts[i]); err == nil {
			parts[i] = v
		}
	}
	for _, c := range r.routes {
		if params, ok := matchSegments(c.pattern, parts); ok {
			return c, params, true
		}
	}
	return compiled{}, nil, false
}

func matchSegments(pattern []segment, parts []string) (Params, bool) {
	params := Params{}
	i := 0
	for _, seg := range pattern {
		switch seg.kind {
		case segWildcard:
			return params, true
		case segOptional:
			if i < len(parts) {
				params[seg.name] = parts[i]
				i++
			}
		case segParam:
			if i >= len(parts) {
				return nil, false
			}
			params[seg.name] = parts[i]
			i++
		case segStatic:
			if i >= len(parts) || parts[i] != seg.name {
				return nil, false
			}
			i++
		}
	}
	return params, i == len(parts)
}

// fill renders a pattern with params. Missing optional parameters are
// omitted; a missing required parameter fails the fill.
func fill(pattern []segment, params Params) (string, bool) {
	var sb strings.Builder
	for _, seg := range pattern {
		switch seg.kind {
		case segStatic:
			sb.WriteString("/" + seg.name)
		case segParam, segOptional:
			v := params.Get(seg.name)
			if v == "" {
				if seg.kind == segParam {
					return "", false
				}
				continue
			}
			sb.WriteString("/" + url.PathEscape(v))
		}
	}
	if sb.Len() == 0 {
		return "/", true
	}
	return sb.String(), true
}

// normalize renders path with a leading slash and no trailing or duplicate
// slashes.
func normalize(path string) string {
	parts := splitPath(path)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// Href builds the path that mounts view with params. It returns the not-found
// path when no route mounts view or a required parameter is missing.
func (r *Resolver) Href(view View, params Params) string {
	for _, c := range r.routes {
		if c.redirect != nil || c.view != view {
			continue
		}
		if path, ok := fill(c.pattern, params); ok {
			return path
		}
	}
	return NotFoundPath
}
