package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"provisioning-mapper/internal/configformat"
	"provisioning-mapper/internal/match"
	"provisioning-mapper/internal/model"
)

// Section names.
const (
	SectionFeature        = "feature"
	SectionVariables      = "variables"
	SectionSettings       = "settings"
	SectionArtifacts      = "artifacts"
	SectionConfigurations = "configurations"

	additionalPrefix = ":"
)

// Header attributes.
const (
	AttrName       = "name"
	AttrType       = "type"
	AttrVersion    = "version"
	AttrRunModes   = "runModes"
	AttrStartLevel = "startLevel"
)

const (
	maxLineSize     = 10 * 1024 * 1024
	maxHintDistance = 3
)

var knownSections = []string{
	SectionFeature,
	SectionVariables,
	SectionSettings,
	SectionArtifacts,
	SectionConfigurations,
}

var allowedAttributes = map[string][]string{
	SectionFeature:        {AttrName, AttrType, AttrVersion},
	SectionVariables:      {},
	SectionSettings:       {AttrRunModes},
	SectionArtifacts:      {AttrRunModes, AttrStartLevel},
	SectionConfigurations: {AttrRunModes},
}

// ParseError reports a problem at a specific line of a document.
type ParseError struct {
	Location string
	Line     int
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	loc := e.Location
	if loc == "" {
		loc = "<input>"
	}

	return fmt.Sprintf("%s:%d: %s", loc, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses a provisioning document. location names the source in errors
// and is recorded on the model and its features.
func Read(r io.Reader, location string) (*model.Model, error) {
	rd := &reader{
		location: location,
		m:        model.NewModel(location),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		rd.lineNo++

		if err := rd.processLine(strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}

	if err := rd.finishSection(); err != nil {
		return nil, err
	}

	return rd.m, nil
}

type sectionMode int

const (
	modeNone sectionMode = iota
	modeFeature
	modeVariables
	modeSettings
	modeArtifacts
	modeConfigurations
	modeAdditional
)

type pendingConfig struct {
	cfg       *model.Configuration
	indent    int
	firstLine int
	lines     []string
}

type reader struct {
	location string
	m        *model.Model
	lineNo   int

	mode    sectionMode
	feature *model.Feature
	runMode *model.RunMode
	group   *model.ArtifactGroup
	section *model.Section
	body    []string
	config  *pendingConfig
}

func (rd *reader) errorf(format string, args ...any) error {
	return &ParseError{Location: rd.location, Line: rd.lineNo, Msg: fmt.Sprintf(format, args...)}
}

func (rd *reader) processLine(line string) error {
	if isHeader(line) {
		if err := rd.finishSection(); err != nil {
			return err
		}

		return rd.startSection(strings.TrimSpace(line))
	}

	trimmed := strings.TrimSpace(line)

	switch rd.mode {
	case modeAdditional:
		rd.body = append(rd.body, line)
		return nil
	case modeConfigurations:
		return rd.configurationLine(line, trimmed)
	}

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	switch rd.mode {
	case modeNone:
		return rd.errorf("content before the first [%s] section", SectionFeature)
	case modeFeature:
		return rd.errorf("unexpected content %q in [%s] section", trimmed, SectionFeature)
	case modeVariables:
		key, value, err := rd.keyValue(trimmed)
		if err != nil {
			return err
		}

		rd.feature.Variables.Put(key, value)
	case modeSettings:
		key, value, err := rd.keyValue(trimmed)
		if err != nil {
			return err
		}

		rd.runMode.Settings.Put(key, value)
	case modeArtifacts:
		a, err := ParseArtifact(trimmed)
		if err != nil {
			return &ParseError{Location: rd.location, Line: rd.lineNo, Msg: err.Error(), Err: err}
		}

		rd.group.Artifacts = append(rd.group.Artifacts, a)
	}

	return nil
}

// isHeader reports whether line is a section header. Headers start in column 0.
func isHeader(line string) bool {
	trimmed := strings.TrimSpace(line)

	return strings.HasPrefix(line, "[") && strings.HasSuffix(trimmed, "]")
}

func (rd *reader) keyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return "", "", rd.errorf("expected key=value, got %q", line)
	}

	return key, strings.TrimSpace(value), nil
}

func (rd *reader) startSection(header string) error {
	tokens, err := splitHeader(header[1 : len(header)-1])
	if err != nil {
		return rd.errorf("%v", err)
	}

	if len(tokens) == 0 {
		return rd.errorf("empty section header")
	}

	name := tokens[0]

	attrs, err := rd.attributes(tokens[1:])
	if err != nil {
		return err
	}

	if name != SectionFeature && rd.feature == nil {
		return rd.errorf("section [%s] before the first [%s] section", name, SectionFeature)
	}

	if strings.HasPrefix(name, additionalPrefix) {
		rd.mode = modeAdditional
		rd.section = &model.Section{
			Name:       strings.TrimPrefix(name, additionalPrefix),
			Attributes: attrs,
		}

		return nil
	}

	allowed, ok := allowedAttributes[name]
	if !ok {
		if hint, found := match.Closest(name, knownSections, maxHintDistance); found {
			return rd.errorf("unknown section [%s], did you mean [%s]?", name, hint)
		}

		return rd.errorf("unknown section [%s]", name)
	}

	for key := range attrs {
		if !slices.Contains(allowed, key) {
			if hint, found := match.Closest(key, allowed, maxHintDistance); found {
				return rd.errorf("unknown attribute %q in [%s], did you mean %q?", key, name, hint)
			}

			return rd.errorf("unknown attribute %q in [%s]", key, name)
		}
	}

	runModes := parseRunModes(attrs[AttrRunModes])
	for _, n := range runModes {
		if err := model.CheckPathElement("run mode", n); err != nil {
			return rd.errorf("%v", err)
		}
	}

	switch name {
	case SectionFeature:
		return rd.startFeature(attrs)
	case SectionVariables:
		rd.mode = modeVariables
	case SectionSettings:
		rd.mode = modeSettings
		rd.runMode = rd.feature.GetOrCreateRunMode(runModes)
	case SectionArtifacts:
		level := 0
		if v, ok := attrs[AttrStartLevel]; ok {
			if level, err = strconv.Atoi(v); err != nil {
				return rd.errorf("invalid %s %q", AttrStartLevel, v)
			}
		}

		rd.mode = modeArtifacts
		rd.runMode = rd.feature.GetOrCreateRunMode(runModes)
		rd.group = rd.runMode.GetOrCreateArtifactGroup(level)
	case SectionConfigurations:
		rd.mode = modeConfigurations
		rd.runMode = rd.feature.GetOrCreateRunMode(runModes)
	}

	return nil
}

func (rd *reader) startFeature(attrs map[string]string) error {
	name := attrs[AttrName]
	if name == "" {
		return rd.errorf("[%s] requires a %s attribute", SectionFeature, AttrName)
	}

	f := model.NewFeature(name)
	f.Type = attrs[AttrType]
	f.Version = attrs[AttrVersion]
	f.Location = rd.location

	rd.m.Features = append(rd.m.Features, f)
	rd.feature = f
	rd.mode = modeFeature
	rd.runMode = nil
	rd.group = nil

	return nil
}

func (rd *reader) attributes(tokens []string) (map[string]string, error) {
	attrs := make(map[string]string, len(tokens))

	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return nil, rd.errorf("invalid attribute %q, expected key=value", tok)
		}

		attrs[key] = value
	}

	return attrs, nil
}

func (rd *reader) configurationLine(line, trimmed string) error {
	indent := len(line) - len(strings.TrimLeft(line, " \t"))

	if rd.config != nil && (trimmed == "" || strings.HasPrefix(trimmed, "#") || indent > rd.config.indent) {
		rd.config.lines = append(rd.config.lines, line)
		return nil
	}

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	if err := rd.flushConfig(); err != nil {
		return err
	}

	cfg, err := parseConfigurationHeader(trimmed)
	if err != nil {
		return &ParseError{Location: rd.location, Line: rd.lineNo, Msg: err.Error(), Err: err}
	}

	if rd.runMode.GetConfiguration(cfg.PID, cfg.FactoryPID) != nil {
		return rd.errorf("duplicate configuration %q in run mode %s", trimmed, model.RunModeLabel(rd.runMode))
	}

	rd.runMode.Configurations = append(rd.runMode.Configurations, cfg)
	rd.config = &pendingConfig{
		cfg:       cfg,
		indent:    indent,
		firstLine: rd.lineNo + 1,
	}

	return nil
}

func (rd *reader) flushConfig() error {
	pc := rd.config
	rd.config = nil

	if pc == nil {
		return nil
	}

	text := strings.Join(pc.lines, "\n")

	var (
		props map[string]any
		err   error
	)

	if pc.cfg.Format == model.FormatProperties {
		props, err = configformat.ParseProperties(text)
	} else {
		props, err = configformat.Parse(text)
	}

	if err != nil {
		line := rd.lineNo

		var se *configformat.SyntaxError
		if errors.As(err, &se) {
			line = pc.firstLine + se.Line - 1
		}

		return &ParseError{
			Location: rd.location,
			Line:     line,
			Msg:      fmt.Sprintf("configuration %s: %v", configLabel(pc.cfg), msgOf(err)),
			Err:      err,
		}
	}

	pc.cfg.Properties = props

	return nil
}

func msgOf(err error) string {
	var se *configformat.SyntaxError
	if errors.As(err, &se) {
		return se.Msg
	}

	return err.Error()
}

func configLabel(cfg *model.Configuration) string {
	if cfg.IsFactory() {
		return cfg.FactoryPID + "-" + cfg.PID
	}

	return cfg.PID
}

func (rd *reader) finishSection() error {
	if err := rd.flushConfig(); err != nil {
		return err
	}

	if rd.mode == modeAdditional && rd.section != nil {
		rd.section.Contents = strings.Join(trimBlank(rd.body), "\n")
		rd.feature.AdditionalSections = append(rd.feature.AdditionalSections, rd.section)
	}

	rd.section = nil
	rd.body = nil

	return nil
}

// trimBlank removes leading and trailing blank lines.
func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return lines[start:end]
}

func parseRunModes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var names []string

	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	return names
}

func splitHeader(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '"':
			inQuote = !inQuote
		case (c == ' ' || c == '\t') && !inQuote:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}

	if inQuote {
		return nil, errors.New("unterminated quote in section header")
	}

	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}

	return tokens, nil
}
