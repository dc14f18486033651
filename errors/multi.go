package errors

import (
	"fmt"
	"strings"
)

// Append joins errors into a single error. Nil values are skipped. If all
// given errors are nil, nil is returned. When only one non nil error is
// given, it is returned as it is.
//
// Use it to collect validation failures of many fields at once:
//
//	err := errors.Append(
//		errors.Wrap(m.Target.Validate(), "target"),
//		errors.Wrap(m.Value.Validate(), "value"),
//	)
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error. All errors collected are of
// equal importance, but a response can carry only one code.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}
