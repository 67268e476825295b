// Package prettyprint formats values for human readable output.
package prettyprint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AsString returns in as indented JSON
func AsString(in any) string {
	res, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", in)
	}

	return string(res)
}

// TruncatedStrSlice returns sl joined by ", ".
// If sl has more then maxElems, only the first maxElems elements are
// returned, followed by the number of omitted ones.
func TruncatedStrSlice(sl []string, maxElems int) string {
	if len(sl) <= maxElems {
		return strings.Join(sl, ", ")
	}

	return fmt.Sprintf("%s, [+%d]", strings.Join(sl[:maxElems], ", "), len(sl)-maxElems)
}
