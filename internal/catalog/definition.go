package catalog

// Definition is the declarative form of a catalog as it appears on disk.
// The same schema is accepted in TOML, YAML and JSON.
type Definition struct {
	Dimensions []DimensionDef `toml:"dimension,omitempty" yaml:"dimension,omitempty" json:"dimension,omitempty"`
	BaseUnits  []BaseUnitDef  `toml:"base_unit,omitempty" yaml:"base_unit,omitempty" json:"base_unit,omitempty"`
	Edges      []EdgeDef      `toml:"edge,omitempty" yaml:"edge,omitempty" json:"edge,omitempty"`
	Systems    []SystemDef    `toml:"system,omitempty" yaml:"system,omitempty" json:"system,omitempty"`
	Units      []UnitDef      `toml:"unit,omitempty" yaml:"unit,omitempty" json:"unit,omitempty"`
}

// DimensionDef registers a base dimension beyond the built-in mass, length
// and time.
type DimensionDef struct {
	Name string `toml:"name" yaml:"name" json:"name"`
}

// BaseUnitDef declares either a root base unit (Dimension set) or a scaled
// base unit (Of and Ratio set).
type BaseUnitDef struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	Symbol    string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Dimension string `toml:"dimension,omitempty" yaml:"dimension,omitempty" json:"dimension,omitempty"`
	Of        string `toml:"of,omitempty" yaml:"of,omitempty" json:"of,omitempty"`
	Ratio     string `toml:"ratio,omitempty" yaml:"ratio,omitempty" json:"ratio,omitempty"`
}

// EdgeDef declares that one From equals Factor To. With Via set the factor
// is composed from the declared edges From → Via and Via → To instead.
// Reverse also declares the opposite direction.
type EdgeDef struct {
	From    string `toml:"from" yaml:"from" json:"from"`
	To      string `toml:"to" yaml:"to" json:"to"`
	Factor  string `toml:"factor,omitempty" yaml:"factor,omitempty" json:"factor,omitempty"`
	Via     string `toml:"via,omitempty" yaml:"via,omitempty" json:"via,omitempty"`
	Reverse bool   `toml:"reverse,omitempty" yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// SystemDef names one base unit per base dimension.
type SystemDef struct {
	Name  string   `toml:"name" yaml:"name" json:"name"`
	Bases []string `toml:"bases" yaml:"bases" json:"bases"`
}

// UnitDef declares either a system unit (System and Dimension set) or a
// scaled unit (Of and Ratio set). Dimension maps dimension names to
// exponents, e.g. {length = 1, time = -1}.
type UnitDef struct {
	Name      string         `toml:"name" yaml:"name" json:"name"`
	Symbol    string         `toml:"symbol" yaml:"symbol" json:"symbol"`
	System    string         `toml:"system,omitempty" yaml:"system,omitempty" json:"system,omitempty"`
	Dimension map[string]int `toml:"dimension,omitempty,inline" yaml:"dimension,omitempty,flow" json:"dimension,omitempty"`
	Of        string         `toml:"of,omitempty" yaml:"of,omitempty" json:"of,omitempty"`
	Ratio     string         `toml:"ratio,omitempty" yaml:"ratio,omitempty" json:"ratio,omitempty"`
}
