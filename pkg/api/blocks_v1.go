// pkg/api/blocks_v1.go
package api

// BlockV1 is the stable JSON/JSONL schema for extracted config blocks.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type BlockV1 struct {
	SourceFile string `json:"source_file"`
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	LineCount  int    `json:"line_count"`
	Text       string `json:"text"`
}
