package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/d-kuro/bank/internal/errors"
	"github.com/d-kuro/bank/pkg/version"
)

// writeVersion prints build information, as JSON when asJSON is set.
func writeVersion(w io.Writer, asJSON bool) error {
	v := version.GetVersion()

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return errors.Wrap(err, "error encoding version info")
		}
		return nil
	}

	_, err := fmt.Fprintln(w, v.String())
	return err
}
