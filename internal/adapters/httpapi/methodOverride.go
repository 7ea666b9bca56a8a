package httpapi

import (
	"net/http"
	"strings"
)

const (
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]bool{
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// MethodOverride rewrites a POST into the verb named by the X-HTTP-Method-Override
// header, a _method query parameter or a _method form field, in that order.
// It runs before routing so the router only ever sees the effective verb.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	candidates := []string{
		r.Header.Get(methodOverrideHeader),
		r.URL.Query().Get(methodOverrideField),
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		// ParseForm keeps the body in r.PostForm, so handlers can still read it.
		if err := r.ParseForm(); err == nil {
			candidates = append(candidates, r.PostForm.Get(methodOverrideField))
		}
	}

	for _, c := range candidates {
		m := strings.ToUpper(strings.TrimSpace(c))
		if overridableMethods[m] {
			return m
		}
	}
	return ""
}
