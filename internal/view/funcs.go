package view

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"golang.org/x/net/publicsuffix"
)

var funcs = template.FuncMap{
	"field":    field,
	"bullets":  bullets,
	"joinList": joinList,
	"text":     text,
}

// field returns the trimmed string value of key in e.
func field(e model.Entry, key string) string {
	return strings.TrimSpace(text(e[key]))
}

// bullets splits a newline-delimited field into list items, dropping empty
// lines and any leading bullet marker the model added.
func bullets(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// joinList renders either a comma-separated string or a JSON array.
func joinList(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(text(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		return joinList(t)
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	default:
		return fmt.Sprint(t)
	}
}

// linkURL turns a stored contact value into an absolute URL. A bare GitHub
// username becomes its profile URL.
func linkURL(raw, bareHost string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if bareHost != "" && !strings.ContainsAny(raw, "./") {
		return "https://" + bareHost + "/" + raw
	}
	return "https://" + raw
}

// linkLabel shortens a URL to its registrable domain plus path, e.g.
// "https://www.linkedin.com/in/jane/" becomes "linkedin.com/in/jane".
func linkLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld
		if sub := strings.TrimSuffix(host, etld); sub != "" && sub != "www." {
			label = strings.TrimPrefix(host, "www.")
		}
	}
	if p := strings.Trim(u.Path, "/"); p != "" {
		label += "/" + p
	}
	return label
}
