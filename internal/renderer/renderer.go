// Package renderer turns a Jinja-style template and a list document into the
// site's index page.
package renderer

import (
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/flosch/pongo2/v6"
)

// Render merges tpl with data. It reads nothing but its arguments. Values are
// written as is: list documents may carry HTML such as links.
func Render(tpl string, data map[string]any) (string, error) {
	t, err := pongo2.FromString("{% autoescape off %}" + tpl + "{% endautoescape %}")
	if err != nil {
		return "", errs.DataFormat("parse template", "", err)
	}
	out, err := t.Execute(pongo2.Context(data))
	if err != nil {
		return "", errs.DataFormat("render template", "", err)
	}
	return out, nil
}
