// internal/reporting/records.go
package reporting

import (
	"bufio"
	"fmt"
	"io"
)

// WriteRecords writes already flattened interactions, as loaded from the
// store, in the sif or json format. The extended format needs the model and
// is rejected.
func WriteRecords(w io.Writer, format string, recs []Record) error {
	switch format {
	case "sif":
		bw := bufio.NewWriter(w)
		for _, r := range recs {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", r.Source, r.Type, r.Target); err != nil {
				return err
			}
		}
		return bw.Flush()
	case "json":
		if recs == nil {
			recs = []Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	default:
		return fmt.Errorf("%w for stored runs: %s", ErrUnsupportedFormat, format)
	}
}
