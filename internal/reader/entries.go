package reader

import (
	"errors"
	"fmt"
	"strings"

	"provisioning-mapper/internal/model"
)

const mvnPrefix = "mvn:"

// Configuration header options.
const (
	OptionFormat = "format"
	OptionMode   = "mode"
)

// ParseArtifact parses an artifact line:
//
//	mvn:group/artifact/version[/type[/classifier]] [key=value, ...]
//
// The "mvn:" prefix is optional.
func ParseArtifact(line string) (*model.Artifact, error) {
	coords, meta, err := splitOptions(line)
	if err != nil {
		return nil, err
	}

	coords = strings.TrimPrefix(coords, mvnPrefix)
	parts := strings.Split(coords, "/")

	if len(parts) < 3 || len(parts) > 5 {
		return nil, fmt.Errorf("invalid artifact %q, expected group/artifact/version[/type[/classifier]]", coords)
	}

	a := &model.Artifact{
		GroupID:    parts[0],
		ArtifactID: parts[1],
		Version:    parts[2],
		Metadata:   meta,
	}

	if len(parts) > 3 {
		a.Type = parts[3]
	}

	if len(parts) > 4 {
		a.Classifier = parts[4]
	}

	if a.GroupID == "" || a.ArtifactID == "" || a.Version == "" {
		return nil, fmt.Errorf("invalid artifact %q, group, artifact and version are required", coords)
	}

	if a.Type == "" {
		a.Type = model.DefaultArtifactType
	}

	return a, nil
}

// parseConfigurationHeader parses "[factoryPid-]pid [format=..., mode=...]".
func parseConfigurationHeader(line string) (*model.Configuration, error) {
	id, opts, err := splitOptions(line)
	if err != nil {
		return nil, err
	}

	if strings.ContainsAny(id, " \t") {
		return nil, fmt.Errorf("invalid configuration pid %q", id)
	}

	factoryPID, pid, isFactory := strings.Cut(id, "-")
	if !isFactory {
		factoryPID, pid = "", id
	}

	if pid == "" || (isFactory && factoryPID == "") {
		return nil, fmt.Errorf("invalid configuration pid %q", id)
	}

	if err := model.CheckPathElement("configuration pid", id); err != nil {
		return nil, err
	}

	cfg := model.NewConfiguration(pid, factoryPID)

	for key, value := range opts {
		switch key {
		case OptionFormat:
			if value != model.FormatFelixConfig && value != model.FormatProperties {
				return nil, fmt.Errorf("unknown configuration format %q", value)
			}

			cfg.Format = value
		case OptionMode:
			if value != model.ModeOverwrite && value != model.ModeMerge {
				return nil, fmt.Errorf("unknown configuration mode %q", value)
			}

			cfg.Mode = value
		default:
			return nil, fmt.Errorf("unknown configuration option %q", key)
		}
	}

	return cfg, nil
}

// splitOptions separates "value [k=v, k2=v2]" into value and options.
func splitOptions(line string) (string, map[string]string, error) {
	idx := strings.Index(line, "[")
	if idx < 0 {
		return strings.TrimSpace(line), nil, nil
	}

	rest := strings.TrimSpace(line[idx:])
	if !strings.HasSuffix(rest, "]") {
		return "", nil, errors.New("unterminated option list, expected ']'")
	}

	opts := make(map[string]string)

	for _, pair := range strings.Split(rest[1:len(rest)-1], ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return "", nil, fmt.Errorf("invalid option %q, expected key=value", pair)
		}

		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return strings.TrimSpace(line[:idx]), opts, nil
}
