package statschema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchema []byte

var ErrInvalidSchema = errors.New("invalid stat schema")

type fileSchema struct {
	Positions []string            `yaml:"positions"`
	Stats     map[string]fileStat `yaml:"stats"`
}

type fileStat struct {
	StatLevel   string `yaml:"stat_level"`
	Type        string `yaml:"type"`
	Level0      string `yaml:"player_log_level_0"`
	Level1      string `yaml:"player_log_level_1"`
	Efficiency  toggle `yaml:"efficiency"`
	Denominator string `yaml:"efficiencyDenominator"`
}

// toggle accepts on/off, yes/no and booleans.
type toggle bool

func (t *toggle) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "on", "true", "yes", "1":
		*t = true
	case "off", "false", "no", "0", "":
		*t = false
	default:
		return fmt.Errorf("line %d: invalid toggle %q", node.Line, node.Value)
	}
	return nil
}

// Default returns the schema bundled with the binary.
func Default() (*Schema, error) {
	return Parse(defaultSchema)
}

// Load reads a schema file; an empty path yields Default.
func Load(path string) (*Schema, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stat schema %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Schema, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(raw, &fs); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidSchema, err)
	}

	s := &Schema{stats: make(map[StatID]Stat, len(fs.Stats))}
	for name, fst := range fs.Stats {
		id := StatID(strings.TrimSpace(name))
		s.stats[id] = Stat{
			ID:          id,
			Level:       Level(strings.ToLower(strings.TrimSpace(fst.StatLevel))),
			Type:        ValueType(strings.ToLower(strings.TrimSpace(fst.Type))),
			Column:      Column{Group: strings.TrimSpace(fst.Level0), Field: strings.TrimSpace(fst.Level1)},
			Efficiency:  bool(fst.Efficiency),
			Denominator: StatID(strings.TrimSpace(fst.Denominator)),
		}
		s.order = append(s.order, id)
	}
	slices.Sort(s.order)

	for _, p := range fs.Positions {
		if p = normalizePosition(p); p != "" && !slices.Contains(s.positions, p) {
			s.positions = append(s.positions, p)
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) validate() error {
	var errs []error
	if len(s.stats) == 0 {
		errs = append(errs, errors.New("at least one stat is required"))
	}
	if len(s.positions) == 0 {
		errs = append(errs, errors.New("positions are required"))
	}

	for _, id := range s.order {
		st := s.stats[id]
		if id == "" {
			errs = append(errs, errors.New("stat name is required"))
			continue
		}
		switch st.Level {
		case LevelPlayer, LevelTeam:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown stat_level %q", id, st.Level))
		}
		switch st.Type {
		case TypeFloat, TypeInt, TypeString:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown type %q", id, st.Type))
		}
		if st.Level == LevelPlayer && (st.Column.Group == "" || st.Column.Field == "") {
			errs = append(errs, fmt.Errorf("%s: player stats need player_log_level_0 and player_log_level_1", id))
		}
		if !st.Efficiency {
			continue
		}
		if st.Level != LevelPlayer {
			errs = append(errs, fmt.Errorf("%s: efficiency is only supported for player stats", id))
		}
		denom, ok := s.stats[st.Denominator]
		switch {
		case st.Denominator == "":
			errs = append(errs, fmt.Errorf("%s: efficiencyDenominator is required when efficiency is on", id))
		case !ok:
			errs = append(errs, fmt.Errorf("%s: unknown efficiencyDenominator %q", id, st.Denominator))
		case denom.Level != LevelPlayer || denom.Type == TypeString:
			errs = append(errs, fmt.Errorf("%s: efficiencyDenominator %q must be a numeric player stat", id, st.Denominator))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(errs...))
	}
	return nil
}
