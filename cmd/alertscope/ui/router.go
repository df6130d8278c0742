package ui

import (
	"fmt"
	"strings"
)

// PageKind identifies one of the browser's entity views.
type PageKind int

const (
	PageAlert PageKind = iota
	PageObject
	PageTemplates
	PageSSObject
	PageNights
	PageQuery
	PageHelp
)

func (k PageKind) String() string {
	switch k {
	case PageAlert:
		return "alert"
	case PageObject:
		return "object"
	case PageTemplates:
		return "templates"
	case PageSSObject:
		return "ssobject"
	case PageNights:
		return "nights"
	case PageQuery:
		return "query"
	case PageHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Route is a parsed navigation target: a page kind plus the identifier it
// displays. The identifier is opaque; only presence is validated here.
type Route struct {
	Kind PageKind
	ID   string
}

// Path renders the route back to its canonical path form.
func (r Route) Path() string {
	switch r.Kind {
	case PageAlert:
		return "/alert/" + r.ID
	case PageObject:
		return "/object/" + r.ID
	case PageTemplates:
		return "/object/" + r.ID + "/templates"
	case PageSSObject:
		return "/ssobject/" + r.ID
	case PageNights:
		return "/nights"
	case PageQuery:
		return "/query"
	case PageHelp:
		return "/help"
	default:
		return "/"
	}
}

// ParseRoute maps a path to a Route. Accepted forms:
//
//	/alert/{id}             alert detail
//	/object/{id}            object summary plots
//	/object/{id}/templates  per-band template images
//	/ssobject/{id}          solar-system object
//	/nights                 night summaries
//	/query                  alert query
//	/help                   help page
//
// A bare number is shorthand for /alert/{id}.
func ParseRoute(path string) (Route, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Route{}, fmt.Errorf("empty path")
	}
	if isDigits(path) {
		return Route{Kind: PageAlert, ID: path}, nil
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "nights":
		return Route{Kind: PageNights}, nil
	case len(parts) == 1 && parts[0] == "query":
		return Route{Kind: PageQuery}, nil
	case len(parts) == 1 && parts[0] == "help":
		return Route{Kind: PageHelp}, nil
	case len(parts) == 2 && parts[0] == "alert" && parts[1] != "":
		return Route{Kind: PageAlert, ID: parts[1]}, nil
	case len(parts) == 2 && parts[0] == "object" && parts[1] != "":
		return Route{Kind: PageObject, ID: parts[1]}, nil
	case len(parts) == 3 && parts[0] == "object" && parts[1] != "" && parts[2] == "templates":
		return Route{Kind: PageTemplates, ID: parts[1]}, nil
	case len(parts) == 2 && parts[0] == "ssobject" && parts[1] != "":
		return Route{Kind: PageSSObject, ID: parts[1]}, nil
	default:
		return Route{}, fmt.Errorf("unknown path %q", path)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
