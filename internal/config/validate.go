package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the settings flow needs. It never touches the network, so
// a misconfigured run fails before any request is made. Every problem is
// reported, one per line.
func (c *Config) Validate(flow Flow) error {
	var problems []string

	targets := []any{c.Site, c.Storage}
	if flow == FlowUpdate {
		targets = append(targets, c.Source)
	}
	for _, t := range targets {
		problems = append(problems, check(t)...)
	}

	if flow == FlowUpdate && c.Source.Kind == SourceDropbox &&
		c.Source.AccessKey == "" && c.Source.AccessKeySecret == "" {
		problems = append(problems, errs.Msg(errs.MissingSetting, "--"+FlagDropboxAccessKey, EnvAccessKey))
	}

	if len(problems) == 0 {
		return nil
	}
	return errs.Config("invalid configuration", errors.New(strings.Join(problems, "\n")))
}

func check(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	s, ok := byNamespace[fe.StructNamespace()]
	if !ok {
		return fmt.Sprintf("%s failed on %q", fe.StructNamespace(), fe.Tag())
	}

	switch fe.Tag() {
	case "oneof":
		return errs.Msg(errs.InvalidSetting, label(s), s.env, fmt.Sprint(fe.Value()), fe.Param())
	default:
		if s.flag == "" {
			return errs.Msg(errs.MissingEnv, s.env)
		}
		return errs.Msg(errs.MissingSetting, "--"+s.flag, s.env)
	}
}

func label(s setting) string {
	if s.flag == "" {
		return "$" + s.env
	}
	return "--" + s.flag
}
