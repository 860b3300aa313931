package app

import (
	"flag"
	"os"
	"strings"
)

// InTestMode reports whether the binary is running under `go test`, in which
// case the runtime startup is skipped.
func InTestMode() bool {
	if flag.Lookup("test.v") != nil {
		return true
	}
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}
