package effective

import (
	"fmt"
	"strings"

	"provisioning-mapper/internal/model"
)

// UndefinedVariableError reports a ${name} reference without a definition.
type UndefinedVariableError struct {
	Feature  string
	Variable string
	// Context describes where the reference was found.
	Context string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("feature %s: undefined variable %q in %s", e.Feature, e.Variable, e.Context)
}

type substituter struct {
	feature string
	vars    *model.KeyValueMap
}

func substitute(f *model.Feature) error {
	s := &substituter{feature: f.Name, vars: f.Variables}

	for _, rm := range f.RunModes {
		for _, key := range rm.Settings.Keys() {
			v, _ := rm.Settings.Get(key)

			nv, err := s.replace(v, "setting "+key)
			if err != nil {
				return err
			}

			rm.Settings.Put(key, nv)
		}

		for _, g := range rm.ArtifactGroups {
			for _, a := range g.Artifacts {
				if err := s.artifact(a); err != nil {
					return err
				}
			}
		}

		for _, c := range rm.Configurations {
			if err := s.configuration(c); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *substituter) artifact(a *model.Artifact) error {
	ctx := "artifact " + a.ToMvnURL()

	for _, field := range []*string{&a.GroupID, &a.ArtifactID, &a.Version, &a.Type, &a.Classifier} {
		v, err := s.replace(*field, ctx)
		if err != nil {
			return err
		}

		*field = v
	}

	return nil
}

func (s *substituter) configuration(c *model.Configuration) error {
	for key, value := range c.Properties {
		ctx := fmt.Sprintf("configuration %s property %s", c.PID, key)

		switch v := value.(type) {
		case string:
			nv, err := s.replace(v, ctx)
			if err != nil {
				return err
			}

			c.Properties[key] = nv
		case []string:
			for i := range v {
				nv, err := s.replace(v[i], ctx)
				if err != nil {
					return err
				}

				v[i] = nv
			}
		}
	}

	return nil
}

func (s *substituter) replace(text, context string) (string, error) {
	if !strings.Contains(text, "${") {
		return text, nil
	}

	var sb strings.Builder

	for i := 0; i < len(text); {
		rest := text[i:]

		switch {
		case strings.HasPrefix(rest, `\${`):
			sb.WriteString("${")
			i += 3
		case strings.HasPrefix(rest, "${"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", fmt.Errorf("feature %s: unterminated variable reference in %s", s.feature, context)
			}

			name := rest[2:end]

			value, ok := s.vars.Get(name)
			if !ok {
				return "", &UndefinedVariableError{Feature: s.feature, Variable: name, Context: context}
			}

			sb.WriteString(value)
			i += end + 1
		default:
			sb.WriteByte(text[i])
			i++
		}
	}

	return sb.String(), nil
}
