// internal/reporting/json.go
package reporting

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/sifminer/internal/sif"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is the JSON shape of one interaction.
type Record struct {
	Source     string   `json:"source"`
	Type       string   `json:"type"`
	Target     string   `json:"target"`
	Directed   bool     `json:"directed"`
	Mediators  []string `json:"mediators"`
	SourcePEs  []string `json:"source_pes,omitempty"`
	TargetPEs  []string `json:"target_pes,omitempty"`
	SourceERs  []string `json:"source_ers,omitempty"`
	TargetERs  []string `json:"target_ers,omitempty"`
	DataSource []string `json:"data_sources,omitempty"`
	PubMedIDs  []string `json:"pubmed_ids,omitempty"`
}

// NewRecord flattens an interaction.
func NewRecord(i *sif.Interaction) Record {
	return Record{
		Source:     i.SourceID,
		Type:       i.Type.Tag,
		Target:     i.TargetID,
		Directed:   i.Type.Directed,
		Mediators:  i.MediatorURIs(),
		SourcePEs:  i.SourcePEs.URIs(),
		TargetPEs:  i.TargetPEs.URIs(),
		SourceERs:  i.SourceERs.URIs(),
		TargetERs:  i.TargetERs.URIs(),
		DataSource: splitNonEmpty(joinSorted(DataSourceColumn.Values(i))),
		PubMedIDs:  splitNonEmpty(joinSorted(PubMedColumn.Values(i))),
	}
}

// Records flattens a list of interactions.
func Records(is []*sif.Interaction) []Record {
	out := make([]Record, 0, len(is))
	for _, i := range is {
		out = append(out, NewRecord(i))
	}
	return out
}

// WriteJSON writes the interactions as an indented JSON array.
func WriteJSON(w io.Writer, is []*sif.Interaction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(is))
}

func splitNonEmpty(joined string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(joined); i++ {
		if joined[i] == multiSep[0] {
			out = append(out, joined[start:i])
			start = i + 1
		}
	}
	return append(out, joined[start:])
}
