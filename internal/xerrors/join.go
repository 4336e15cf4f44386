package xerrors

import (
	"strconv"
	"strings"
)

// Join combines issues of a batch operation. It returns nil when errs has no errors.
func Join(errs ...error) error {
	var joined issues
	for _, err := range errs {
		if err != nil {
			joined = append(joined, err)
		}
	}
	if len(joined) == 0 {
		return nil
	}

	return joined
}

type issues []error

func (errs issues) Error() string {
	quoted := make([]string, 0, len(errs))
	for _, err := range errs {
		quoted = append(quoted, strconv.Quote(err.Error()))
	}

	return "[" + strings.Join(quoted, ",") + "]"
}

func (errs issues) Unwrap() []error {
	return errs
}
