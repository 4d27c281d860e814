package loam

// PuzzleMetadata is the frontmatter of a puzzle document.
// Numeric fields stay untyped because YAML and JSON documents decode numbers
// differently; they are normalized by decodePuzzle.
type PuzzleMetadata struct {
	ID     string `json:"id" mapstructure:"id"`
	Label  string `json:"label" mapstructure:"label"`
	Lesson any    `json:"lesson" mapstructure:"lesson"`

	A any `json:"a" mapstructure:"a"`
	B any `json:"b" mapstructure:"b"`
	C any `json:"c" mapstructure:"c"`

	// Right, when present, makes the puzzle two-sided: {a: 2, b: 1}.
	Right map[string]any `json:"right,omitempty" mapstructure:"right"`
}

// record is the normalized shape decoded from PuzzleMetadata.
type record struct {
	ID     string `mapstructure:"id"`
	Label  string `mapstructure:"label"`
	Lesson string `mapstructure:"lesson"`
	A      int    `mapstructure:"a"`
	B      int    `mapstructure:"b"`
	C      int    `mapstructure:"c"`
	Right  *struct {
		A int `mapstructure:"a"`
		B int `mapstructure:"b"`
	} `mapstructure:"right"`
}
