// internal/reporting/sif.go
package reporting

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xkilldash9x/sifminer/internal/sif"
)

// WriteSIF writes one "source<TAB>type<TAB>target" line per interaction, in
// the given order.
func WriteSIF(w io.Writer, is []*sif.Interaction) error {
	bw := bufio.NewWriter(w)
	for _, i := range is {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", i.SourceID, i.Type.Tag, i.TargetID); err != nil {
			return err
		}
	}
	return bw.Flush()
}
