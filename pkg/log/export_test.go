package log

import "io"

func OverloadStderr(w io.Writer) func() {
	ref := stderr
	stderr = w
	return func() { stderr = ref }
}
